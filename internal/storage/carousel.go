// Package storage owns the on-disk image files of the catalog.
//
// Each product has one optional main image, {slug}.webp, and an ordered
// carousel persisted as {slug}-1.webp … {slug}-N.webp. The index sequence
// is dense and 1-based: every mutation (append, delete, reorder, rename)
// must leave the directory gapless. Nothing is cached; every operation
// re-reads the directory, so operations on the same slug are not safe
// under concurrent callers.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"github.com/google/uuid"
)

const tempPrefix = "_tmp_"

// CarouselImage is one stored carousel file.
type CarouselImage struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

// CarouselStore implements the numbered-file naming scheme on a single
// local directory.
type CarouselStore struct {
	dir     string
	baseURL string
	encoder Encoder
}

// NewCarouselStore creates the storage directory if needed. baseURL is the
// public path prefix the files are served under, e.g. "/uploads/products".
func NewCarouselStore(dir, baseURL string, encoder Encoder) (*CarouselStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &CarouselStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		encoder: encoder,
	}, nil
}

func (s *CarouselStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *CarouselStore) url(name string) string {
	return s.baseURL + "/" + name
}

func carouselName(slug string, index int) string {
	return fmt.Sprintf("%s-%d.webp", slug, index)
}

func mainName(slug string) string {
	return slug + ".webp"
}

// carouselPattern matches {slug}-{index}.webp and captures the index.
func carouselPattern(slug string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(slug) + `-(\d+)\.webp$`)
}

// indexes returns the current carousel indexes of a slug, sorted ascending.
// Recomputed from the directory on every call.
func (s *CarouselStore) indexes(slug string) ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploads directory: %w", err)
	}

	pattern := carouselPattern(slug)
	var result []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		result = append(result, index)
	}

	sort.Ints(result)
	return result, nil
}

// List returns the carousel images of a slug in index order.
func (s *CarouselStore) List(slug string) ([]CarouselImage, error) {
	indexes, err := s.indexes(slug)
	if err != nil {
		return nil, err
	}

	images := make([]CarouselImage, 0, len(indexes))
	for _, index := range indexes {
		images = append(images, CarouselImage{
			Index: index,
			URL:   s.url(carouselName(slug, index)),
		})
	}
	return images, nil
}

// Append encodes each file and stores it after the current maximum index.
// Returns the URLs of the stored files in input order.
func (s *CarouselStore) Append(slug string, files []io.Reader) ([]string, error) {
	indexes, err := s.indexes(slug)
	if err != nil {
		return nil, err
	}

	next := 1
	if len(indexes) > 0 {
		next = indexes[len(indexes)-1] + 1
	}

	logger.Debug("Appending carousel images", map[string]interface{}{
		"slug":        slug,
		"count":       len(files),
		"start_index": next,
	})

	var urls []string
	for i, file := range files {
		name := carouselName(slug, next+i)
		if err := s.writeEncoded(name, file); err != nil {
			return urls, err
		}
		urls = append(urls, s.url(name))
	}
	return urls, nil
}

func (s *CarouselStore) writeEncoded(name string, r io.Reader) error {
	out, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := s.encoder.Encode(out, r); err != nil {
		out.Close()
		os.Remove(s.path(name))
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return nil
}

// DeleteOne removes the file at the given index, then compacts the
// remaining files back to a dense sequence. Deleting an index that does
// not exist is a no-op success.
func (s *CarouselStore) DeleteOne(slug string, index int) error {
	err := os.Remove(s.path(carouselName(slug, index)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete carousel image: %w", err)
	}

	remaining, err := s.indexes(slug)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return nil
	}

	// Remaining indexes in ascending order double as the compaction
	// permutation: {1,3} reordered as [1,3] yields dense {1,2}.
	return s.Reorder(slug, remaining)
}

// Reorder applies a permutation given as the sequence of current indexes
// in the desired new order: [3,1,2] moves the file currently at index 3
// to index 1, current 1 to 2, current 2 to 3.
//
// Renames go through a run-scoped temp name so overlapping source and
// destination ranges cannot clobber each other. Indexes in newOrder with
// no file on disk are silently skipped; positions are assigned only to
// files that were actually staged, so the result stays dense from 1.
func (s *CarouselStore) Reorder(slug string, newOrder []int) error {
	runID := uuid.NewString()

	logger.Debug("Reordering carousel images", map[string]interface{}{
		"slug":   slug,
		"order":  newOrder,
		"run_id": runID,
	})

	// Best-effort rollback: move staged temp files back to their
	// original names after a phase-1 failure.
	var tempNames, originalNames []string
	rollback := func() {
		for i, tmp := range tempNames {
			if err := os.Rename(s.path(tmp), s.path(originalNames[i])); err != nil {
				logger.Warn("Failed to roll back staged carousel image", map[string]interface{}{
					"slug":  slug,
					"temp":  tmp,
					"error": err.Error(),
				})
			}
		}
	}

	// Phase 1: move every named file out of the canonical namespace.
	for _, current := range newOrder {
		src := carouselName(slug, current)
		tmp := fmt.Sprintf("%s%s_%d.webp", tempPrefix, runID, current)

		if err := os.Rename(s.path(src), s.path(tmp)); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			rollback()
			return fmt.Errorf("failed to stage carousel image %s: %w", src, err)
		}
		tempNames = append(tempNames, tmp)
		originalNames = append(originalNames, src)
	}

	// Phase 2: assign dense canonical names in the requested order.
	for position, tmp := range tempNames {
		dst := carouselName(slug, position+1)
		if err := os.Rename(s.path(tmp), s.path(dst)); err != nil {
			return fmt.Errorf("failed to place carousel image %s: %w", dst, err)
		}
	}

	return nil
}

// RenameAll moves the main image and every carousel file from oldSlug to
// newSlug, preserving indexes. A pure prefix substitution: no compaction,
// no reorder. On failure, already-renamed files are moved back best
// effort so the caller can abort before committing the record.
func (s *CarouselStore) RenameAll(oldSlug, newSlug string) error {
	logger.Info("Renaming product images", map[string]interface{}{
		"old_slug": oldSlug,
		"new_slug": newSlug,
	})

	type rename struct {
		from string
		to   string
	}

	var pending []rename

	if _, err := os.Stat(s.path(mainName(oldSlug))); err == nil {
		pending = append(pending, rename{from: mainName(oldSlug), to: mainName(newSlug)})
	}

	indexes, err := s.indexes(oldSlug)
	if err != nil {
		return err
	}
	for _, index := range indexes {
		pending = append(pending, rename{
			from: carouselName(oldSlug, index),
			to:   carouselName(newSlug, index),
		})
	}

	var done []rename
	for _, r := range pending {
		if err := os.Rename(s.path(r.from), s.path(r.to)); err != nil {
			for _, d := range done {
				if rollbackErr := os.Rename(s.path(d.to), s.path(d.from)); rollbackErr != nil {
					logger.Warn("Failed to roll back renamed image", map[string]interface{}{
						"file":  d.to,
						"error": rollbackErr.Error(),
					})
				}
			}
			return fmt.Errorf("failed to rename image %s: %w", r.from, err)
		}
		done = append(done, r)
	}

	return nil
}

// DeleteAll removes the main image and every carousel file of a slug.
// Missing files are ignored; the product deletion must not fail because
// images were already gone.
func (s *CarouselStore) DeleteAll(slug string) error {
	if err := s.DeleteMain(slug); err != nil {
		return err
	}

	indexes, err := s.indexes(slug)
	if err != nil {
		return err
	}
	for _, index := range indexes {
		if err := os.Remove(s.path(carouselName(slug, index))); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete carousel image: %w", err)
		}
	}

	logger.Info("Product images deleted", map[string]interface{}{
		"slug":  slug,
		"count": len(indexes),
	})
	return nil
}

// SaveMain encodes and stores the main image as {slug}.webp and returns
// its URL with a cache-busting version parameter. The filename never
// changes across re-uploads, so the version parameter is what forces
// consumers past cached copies.
func (s *CarouselStore) SaveMain(slug string, r io.Reader) (string, error) {
	name := mainName(slug)
	if err := s.writeEncoded(name, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s?v=%d", s.url(name), time.Now().Unix()), nil
}

// DeleteMain removes the main image file. Missing file is a no-op.
func (s *CarouselStore) DeleteMain(slug string) error {
	err := os.Remove(s.path(mainName(slug)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete main image: %w", err)
	}
	return nil
}

// MainImageURL returns the URL of the main image if the file exists.
func (s *CarouselStore) MainImageURL(slug string) (string, bool) {
	if _, err := os.Stat(s.path(mainName(slug))); err != nil {
		return "", false
	}
	return s.url(mainName(slug)), true
}

// SweepTemp removes temp files left behind by interrupted reorders. Only
// files older than the given age are removed, so a reorder running right
// now keeps its staging files.
func (s *CarouselStore) SweepTemp(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read uploads directory: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(s.path(entry.Name())); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove stray temp file", map[string]interface{}{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info("Removed stray temp image files", map[string]interface{}{
			"count": removed,
		})
	}
	return removed, nil
}
