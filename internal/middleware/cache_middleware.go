package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/MPA-Digital-Solutions/TechMedis/pkg/redis"
	"github.com/gin-gonic/gin"
)

// bodyRecorder duplicates the response body so it can be cached after the
// handler runs.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// PageCache serves successful JSON responses from the Redis page cache.
// pathFn maps the request to its logical page path (the same keys the
// revalidation endpoint invalidates). When Redis is down requests pass
// straight through.
func PageCache(pathFn func(*gin.Context) string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redis.GetClient() == nil {
			c.Next()
			return
		}

		path := pathFn(c)
		log := GetLoggerFromContext(c)

		if payload, ok := redis.GetCachedPage(c.Request.Context(), path); ok {
			log.Debug("Serving page from cache", map[string]interface{}{
				"page": path,
			})
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Header("X-Cache", "MISS")

		c.Next()

		if c.Writer.Status() == http.StatusOK && recorder.body.Len() > 0 {
			if err := redis.CachePage(c.Request.Context(), path, recorder.body.Bytes(), ttl); err == nil {
				log.Debug("Page cached", map[string]interface{}{
					"page": path,
				})
			}
		}
	}
}
