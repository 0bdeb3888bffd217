package controller

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/service"
	appErrors "github.com/MPA-Digital-Solutions/TechMedis/internal/errors"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/middleware"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/formatter"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
	configService  service.ConfigService
}

func NewProductController(productService service.ProductService, configService service.ConfigService) *ProductController {
	return &ProductController{
		productService: productService,
		configService:  configService,
	}
}

// ListProducts returns the active catalog, optionally filtered.
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := model.StatusActive
	filter := repository.ProductFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Search:      c.Query("search"),
		Status:      &status,
		Limit:       parseIntQuery(c, "limit"),
		Offset:      parseIntQuery(c, "offset"),
	}

	products, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductBySlug returns one product with its rendered description and
// carousel, for the public detail page.
// GET /api/v1/products/:slug
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	slug := c.Param("slug")

	product, err := ctrl.productService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			appErrors.NotFound(c, appErrors.ProductNotFound, "No se encontró el producto")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"slug": slug,
		})
		appErrors.InternalError(c, "")
		return
	}

	if !product.IsActive() {
		appErrors.NotFound(c, appErrors.ProductNotFound, "No se encontró el producto")
		return
	}

	carousel, err := ctrl.productService.ListCarousel(product.Slug)
	if err != nil {
		log.Error("Failed to list carousel images", err, map[string]interface{}{
			"slug": slug,
		})
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":     product,
		"description": formatter.Format(product.Description),
		"carousel":    carousel,
		"whatsapp":    ctrl.configService.GetWhatsAppNumber(),
	})
}

// ListAllProducts returns every product regardless of status.
// GET /api/v1/admin/products
func (ctrl *ProductController) ListAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Search:      c.Query("search"),
		Limit:       parseIntQuery(c, "limit"),
		Offset:      parseIntQuery(c, "offset"),
	}
	if status := c.Query("status"); status != "" {
		s := model.ProductStatus(status)
		filter.Status = &s
	}

	products, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product for the admin edit screen.
// GET /api/v1/admin/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		ctrl.respondServiceError(c, err, "fetch product")
		return
	}

	carousel, err := ctrl.productService.ListCarousel(product.Slug)
	if err != nil {
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":  product,
		"carousel": carousel,
	})
}

// CreateProduct creates a product from a multipart form: text fields, an
// optional "image" main file and any number of "carouselImages" files.
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	input, ok := bindProductInput(c)
	if !ok {
		return
	}

	mainImage, closeMain, ok := openOptionalFile(c, "image")
	if !ok {
		return
	}
	defer closeMain()

	carousel, closeCarousel, ok := openFormFiles(c, "carouselImages")
	if !ok {
		return
	}
	defer closeCarousel()

	product, err := ctrl.productService.CreateProduct(input, mainImage, carousel)
	if err != nil {
		ctrl.respondServiceError(c, err, "create product")
		return
	}

	log.Info("Product created via admin", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct updates a product from the same multipart shape as
// CreateProduct, plus "keepCurrentImage" and "carouselOrder".
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	input, ok := bindProductInput(c)
	if !ok {
		return
	}

	opts := service.UpdateOptions{
		KeepCurrentImage: c.DefaultPostForm("keepCurrentImage", "true") == "true",
	}
	if orderJSON := c.PostForm("carouselOrder"); orderJSON != "" {
		if err := json.Unmarshal([]byte(orderJSON), &opts.CarouselOrder); err != nil {
			appErrors.BadRequest(c, appErrors.ImageInvalidOrder, "El orden del carrusel es inválido")
			return
		}
	}

	mainImage, closeMain, ok := openOptionalFile(c, "image")
	if !ok {
		return
	}
	defer closeMain()

	carouselAdds, closeCarousel, ok := openFormFiles(c, "carouselImages")
	if !ok {
		return
	}
	defer closeCarousel()

	product, err := ctrl.productService.UpdateProduct(id, input, mainImage, carouselAdds, opts)
	if err != nil {
		ctrl.respondServiceError(c, err, "update product")
		return
	}

	log.Info("Product updated via admin", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct removes the product and all its image files.
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		ctrl.respondServiceError(c, err, "delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Producto eliminado",
	})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus toggles a product between active and inactive.
// PATCH /api/v1/admin/products/:id/status
func (ctrl *ProductController) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Datos inválidos")
		return
	}

	if err := ctrl.productService.SetStatus(id, req.Status); err != nil {
		ctrl.respondServiceError(c, err, "update product status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Estado actualizado",
	})
}

// AddCarouselImages appends uploaded files to the product's carousel.
// POST /api/v1/admin/products/:id/images
func (ctrl *ProductController) AddCarouselImages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	files, closeFiles, ok := openFormFiles(c, "carouselImages")
	if !ok {
		return
	}
	defer closeFiles()

	if len(files) == 0 {
		appErrors.BadRequest(c, appErrors.ValidationRequired, "Debe adjuntar al menos una imagen")
		return
	}

	urls, err := ctrl.productService.AddCarouselImages(id, files)
	if err != nil {
		ctrl.respondServiceError(c, err, "append carousel images")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"urls": urls,
	})
}

// DeleteCarouselImage removes one carousel image and compacts the rest.
// DELETE /api/v1/admin/products/:id/images/:index
func (ctrl *ProductController) DeleteCarouselImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 1 {
		appErrors.BadRequest(c, appErrors.ValidationInvalidID, "Índice de imagen inválido")
		return
	}

	if err := ctrl.productService.DeleteCarouselImage(id, index); err != nil {
		ctrl.respondServiceError(c, err, "delete carousel image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Imagen eliminada",
	})
}

type reorderRequest struct {
	Order []int `json:"order" binding:"required"`
}

// ReorderCarousel applies a permutation of current indexes.
// PUT /api/v1/admin/products/:id/images/order
func (ctrl *ProductController) ReorderCarousel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Order) == 0 {
		appErrors.BadRequest(c, appErrors.ImageInvalidOrder, "El orden del carrusel es inválido")
		return
	}

	if err := ctrl.productService.ReorderCarousel(id, req.Order); err != nil {
		ctrl.respondServiceError(c, err, "reorder carousel")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orden actualizado",
	})
}

func (ctrl *ProductController) respondServiceError(c *gin.Context, err error, action string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		appErrors.NotFound(c, appErrors.ProductNotFound, "No se encontró el producto")
	case errors.Is(err, service.ErrSlugExists):
		appErrors.Conflict(c, appErrors.ProductSlugExists, "Ya existe un producto con este slug")
	case errors.Is(err, service.ErrNameRequired):
		appErrors.BadRequest(c, appErrors.ValidationRequired, "El nombre es obligatorio")
	case errors.Is(err, service.ErrInvalidSlug):
		appErrors.BadRequest(c, appErrors.ValidationInvalidSlug, "El slug solo admite minúsculas, números y guiones")
	case errors.Is(err, service.ErrInvalidCategory):
		appErrors.BadRequest(c, appErrors.ProductInvalidCategory, "La categoría o subcategoría no existe")
	case errors.Is(err, service.ErrInvalidStatus):
		appErrors.BadRequest(c, appErrors.ValidationInvalidStatus, "El estado debe ser active o inactive")
	case errors.Is(err, service.ErrInvalidMetadata):
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Los datos técnicos tienen un formato inválido")
	case errors.Is(err, service.ErrImageStorageFailed):
		appErrors.RespondWithError(c, http.StatusInternalServerError, appErrors.ImageStorageFailed, "No se pudieron guardar las imágenes")
	default:
		log.Error("Failed to "+action, err, nil)
		info := appErrors.ParseError(err, action)
		appErrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}

// bindProductInput reads the shared multipart text fields.
func bindProductInput(c *gin.Context) (service.ProductInput, bool) {
	input := service.ProductInput{
		Name:         c.PostForm("name"),
		Slug:         c.PostForm("slug"),
		Description:  c.PostForm("description"),
		Category:     c.PostForm("category"),
		Subcategory:  c.PostForm("subcategory"),
		Subcategory2: c.PostForm("subcategory2"),
		Status:       model.ProductStatus(c.PostForm("status")),
	}

	if metadataJSON := c.PostForm("metadata"); metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &input.Metadata); err != nil {
			appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Los datos técnicos tienen un formato inválido")
			return input, false
		}
	}

	return input, true
}

// openOptionalFile opens a single multipart file if present. The caller
// must invoke the returned closer.
func openOptionalFile(c *gin.Context, field string) (io.Reader, func(), bool) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, true
		}
		appErrors.BadRequest(c, appErrors.ImageInvalidFile, "No se pudo leer la imagen adjunta")
		return nil, func() {}, false
	}

	file, err := header.Open()
	if err != nil {
		appErrors.BadRequest(c, appErrors.ImageInvalidFile, "No se pudo leer la imagen adjunta")
		return nil, func() {}, false
	}
	return file, func() { file.Close() }, true
}

// openFormFiles opens every file uploaded under a repeated field name.
func openFormFiles(c *gin.Context, field string) ([]io.Reader, func(), bool) {
	noop := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, true
		}
		appErrors.BadRequest(c, appErrors.ImageInvalidFile, "No se pudieron leer las imágenes adjuntas")
		return nil, noop, false
	}

	headers := form.File[field]
	readers := make([]io.Reader, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closeAll()
			appErrors.BadRequest(c, appErrors.ImageInvalidFile, "No se pudieron leer las imágenes adjuntas")
			return nil, noop, false
		}
		opened = append(opened, file)
		readers = append(readers, file)
	}

	return readers, closeAll, true
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidID, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

func parseIntQuery(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}
