package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/storage"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/taxonomy"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrNameRequired       = errors.New("product name is required")
	ErrSlugExists         = errors.New("slug already in use")
	ErrInvalidSlug        = errors.New("invalid slug")
	ErrInvalidCategory    = errors.New("invalid category or subcategory")
	ErrInvalidStatus      = errors.New("invalid product status")
	ErrInvalidMetadata    = errors.New("invalid metadata value")
	ErrImageStorageFailed = errors.New("image storage failed")
)

// CatalogPaths are the rendered pages that list products; invalidated on
// every product mutation.
var CatalogPaths = []string{"/", "/equipamientos-clinicos", "/equipamiento-veterinario"}

// ImageStore is the slice of the carousel file store the product service
// drives.
type ImageStore interface {
	List(slug string) ([]storage.CarouselImage, error)
	Append(slug string, files []io.Reader) ([]string, error)
	DeleteOne(slug string, index int) error
	Reorder(slug string, newOrder []int) error
	RenameAll(oldSlug, newSlug string) error
	DeleteAll(slug string) error
	SaveMain(slug string, r io.Reader) (string, error)
	DeleteMain(slug string) error
	MainImageURL(slug string) (string, bool)
}

// PageInvalidator drops cached page payloads after a mutation.
type PageInvalidator interface {
	InvalidatePages(ctx context.Context, paths []string) error
}

type ProductInput struct {
	Name         string
	Slug         string
	Description  string
	Category     string
	Subcategory  string
	Subcategory2 string
	Status       model.ProductStatus
	Metadata     model.Metadata
}

type UpdateOptions struct {
	// KeepCurrentImage false with no new main image removes the current one.
	KeepCurrentImage bool
	// CarouselOrder, when non-empty, is applied as a reorder permutation
	// after any new carousel files are appended.
	CarouselOrder []int
}

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	ListCarousel(slug string) ([]storage.CarouselImage, error)
	CreateProduct(input ProductInput, mainImage io.Reader, carousel []io.Reader) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput, mainImage io.Reader, carouselAdds []io.Reader, opts UpdateOptions) (*model.Product, error)
	DeleteProduct(id uint) error
	SetStatus(id uint, status string) error
	AddCarouselImages(id uint, files []io.Reader) ([]string, error)
	DeleteCarouselImage(id uint, index int) error
	ReorderCarousel(id uint, order []int) error
}

type productService struct {
	productRepo repository.ProductRepository
	images      ImageStore
	invalidator PageInvalidator
}

func NewProductService(productRepo repository.ProductRepository, images ImageStore, invalidator PageInvalidator) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		invalidator: invalidator,
	}
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindWithFilter(filter)
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListCarousel(slug string) ([]storage.CarouselImage, error) {
	return s.images.List(slug)
}

func (s *productService) validateInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return ErrNameRequired
	}

	if input.Slug == "" {
		input.Slug = util.GenerateSlug(input.Name)
	}
	if !util.IsValidSlug(input.Slug) {
		return ErrInvalidSlug
	}

	if !taxonomy.IsValidCategory(input.Category) {
		return ErrInvalidCategory
	}
	category := taxonomy.Category(input.Category)
	if !taxonomy.IsValidSubcategory(category, input.Subcategory) {
		return ErrInvalidCategory
	}
	if !taxonomy.IsValidSubcategory(category, input.Subcategory2) {
		return ErrInvalidCategory
	}

	if input.Status == "" {
		input.Status = model.StatusActive
	}
	if input.Status != model.StatusActive && input.Status != model.StatusInactive {
		return ErrInvalidStatus
	}

	for key, value := range input.Metadata {
		switch value.(type) {
		case string, bool, float64, int, nil:
		default:
			logger.Warn("Rejected metadata value", map[string]interface{}{
				"key": key,
			})
			return ErrInvalidMetadata
		}
	}

	return nil
}

// CreateProduct validates and uniqueness-checks before touching the file
// system, so a rejected slug never leaves orphan image files. If the
// record insert fails afterwards, stored images are cleaned up best
// effort.
func (s *productService) CreateProduct(input ProductInput, mainImage io.Reader, carousel []io.Reader) (*model.Product, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsBySlug(input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugExists
	}

	product := &model.Product{
		Slug:         input.Slug,
		Name:         input.Name,
		Description:  input.Description,
		Status:       input.Status,
		Category:     input.Category,
		Subcategory:  input.Subcategory,
		Subcategory2: input.Subcategory2,
		Metadata:     input.Metadata,
	}

	if mainImage != nil {
		url, err := s.images.SaveMain(input.Slug, mainImage)
		if err != nil {
			return nil, ErrImageStorageFailed
		}
		product.Image = url
	}

	if len(carousel) > 0 {
		if _, err := s.images.Append(input.Slug, carousel); err != nil {
			s.cleanupImages(input.Slug)
			return nil, ErrImageStorageFailed
		}
	}

	if err := s.productRepo.Create(product); err != nil {
		s.cleanupImages(input.Slug)
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	s.invalidateProductPages(product.Slug)
	return product, nil
}

// UpdateProduct stages file operations before the record commit. On a
// slug change the files are renamed first; if the database update then
// fails, the rename is reverted so disk and record stay consistent.
func (s *productService) UpdateProduct(id uint, input ProductInput, mainImage io.Reader, carouselAdds []io.Reader, opts UpdateOptions) (*model.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	oldSlug := product.Slug
	slugChanged := input.Slug != oldSlug

	if slugChanged {
		exists, err := s.productRepo.ExistsBySlug(input.Slug, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSlugExists
		}

		if err := s.images.RenameAll(oldSlug, input.Slug); err != nil {
			return nil, ErrImageStorageFailed
		}
		if product.Image != "" {
			product.Image = strings.Replace(product.Image, oldSlug+".webp", input.Slug+".webp", 1)
		}
	}

	if mainImage != nil {
		url, err := s.images.SaveMain(input.Slug, mainImage)
		if err != nil {
			s.revertRename(slugChanged, input.Slug, oldSlug)
			return nil, ErrImageStorageFailed
		}
		product.Image = url
	} else if !opts.KeepCurrentImage {
		if err := s.images.DeleteMain(input.Slug); err != nil {
			s.revertRename(slugChanged, input.Slug, oldSlug)
			return nil, ErrImageStorageFailed
		}
		product.Image = ""
	}

	if len(carouselAdds) > 0 {
		if _, err := s.images.Append(input.Slug, carouselAdds); err != nil {
			s.revertRename(slugChanged, input.Slug, oldSlug)
			return nil, ErrImageStorageFailed
		}
	}

	if len(opts.CarouselOrder) > 0 {
		if err := s.images.Reorder(input.Slug, opts.CarouselOrder); err != nil {
			s.revertRename(slugChanged, input.Slug, oldSlug)
			return nil, ErrImageStorageFailed
		}
	}

	product.Slug = input.Slug
	product.Name = input.Name
	product.Description = input.Description
	product.Status = input.Status
	product.Category = input.Category
	product.Subcategory = input.Subcategory
	product.Subcategory2 = input.Subcategory2
	product.Metadata = input.Metadata

	if err := s.productRepo.Update(product); err != nil {
		s.revertRename(slugChanged, input.Slug, oldSlug)
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id":   product.ID,
		"slug":         product.Slug,
		"slug_changed": slugChanged,
	})

	s.invalidateProductPages(product.Slug)
	if slugChanged {
		s.invalidateProductPages(oldSlug)
	}
	return product, nil
}

func (s *productService) revertRename(slugChanged bool, newSlug, oldSlug string) {
	if !slugChanged {
		return
	}
	if err := s.images.RenameAll(newSlug, oldSlug); err != nil {
		logger.Error("Failed to revert image rename after aborted update", err, map[string]interface{}{
			"new_slug": newSlug,
			"old_slug": oldSlug,
		})
	}
}

// DeleteProduct removes images before the record: once the record is
// gone there is no slug left to find orphan files by.
func (s *productService) DeleteProduct(id uint) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.images.DeleteAll(product.Slug); err != nil {
		logger.Error("Failed to delete product images", err, map[string]interface{}{
			"slug": product.Slug,
		})
		return ErrImageStorageFailed
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
		"slug":       product.Slug,
	})

	s.invalidateProductPages(product.Slug)
	return nil
}

func (s *productService) SetStatus(id uint, status string) error {
	if status != string(model.StatusActive) && status != string(model.StatusInactive) {
		return ErrInvalidStatus
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.productRepo.UpdateStatus(id, model.ProductStatus(status)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.invalidateProductPages(product.Slug)
	return nil
}

func (s *productService) AddCarouselImages(id uint, files []io.Reader) ([]string, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	urls, err := s.images.Append(product.Slug, files)
	if err != nil {
		return nil, ErrImageStorageFailed
	}

	s.invalidateProductPages(product.Slug)
	return urls, nil
}

func (s *productService) DeleteCarouselImage(id uint, index int) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.images.DeleteOne(product.Slug, index); err != nil {
		return ErrImageStorageFailed
	}

	s.invalidateProductPages(product.Slug)
	return nil
}

func (s *productService) ReorderCarousel(id uint, order []int) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.images.Reorder(product.Slug, order); err != nil {
		return ErrImageStorageFailed
	}

	s.invalidateProductPages(product.Slug)
	return nil
}

func (s *productService) cleanupImages(slug string) {
	if err := s.images.DeleteAll(slug); err != nil {
		logger.Warn("Failed to clean up images after aborted create", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
	}
}

func (s *productService) invalidateProductPages(slug string) {
	if s.invalidator == nil {
		return
	}

	paths := append([]string{}, CatalogPaths...)
	paths = append(paths, "/productos/"+slug)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.invalidator.InvalidatePages(ctx, paths); err != nil {
		logger.Warn("Failed to invalidate cached pages", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
	}
}
