package service

import (
	"errors"
	"log"

	"go-stock-api/internal/apperr"
	"go-stock-api/internal/media"
	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"
	"go-stock-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogService owns Category and Product rows. It may change every
// product field except stock, which only the ledger writes after creation.
type CatalogService interface {
	CreateProduct(identity model.Identity, req *CreateProductRequest) (*model.Product, error)
	UpdateProduct(identity model.Identity, id uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	DeleteProduct(identity model.Identity, id uuid.UUID) error
	ListProducts(filter repository.ProductFilter, page repository.Page) ([]model.Product, int64, error)
	ListLowStock(threshold int, page repository.Page) ([]model.Product, int64, error)

	CreateCategory(identity model.Identity, req *CategoryRequest) (*model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	UpdateCategory(identity model.Identity, id uuid.UUID, req *CategoryRequest) (*model.Category, error)
	DeleteCategory(identity model.Identity, id uuid.UUID) error
	ListCategories(page repository.Page) ([]model.Category, int64, error)
	CategoryOptions() ([]model.CategoryOption, error)
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	ImagePath   *string         `json:"image_path"`
	CategoryID  uuid.UUID       `json:"category_id" validate:"uuid_required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest deliberately has no stock field: stock changes only
// through the ledger.
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	ImagePath   *string         `json:"image_path"`
	CategoryID  uuid.UUID       `json:"category_id" validate:"uuid_required"`
	Price       decimal.Decimal `json:"price"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	txRepo       repository.TransactionRepository
	mediaStore   media.Store
	db           *gorm.DB
}

func NewCatalogService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, tRepo repository.TransactionRepository, store media.Store, db *gorm.DB) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		txRepo:       tRepo,
		mediaStore:   store,
		db:           db,
	}
}

func (s *catalogService) CreateProduct(identity model.Identity, req *CreateProductRequest) (*model.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, apperr.New(apperr.KindValidation, "price must not be negative")
	}

	if existing, _ := s.productRepo.FindByName(req.Name); existing != nil {
		return nil, apperr.Newf(apperr.KindConflict, "product '%s' already exists", req.Name)
	}
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, apperr.New(apperr.KindNotFound, "category not found")
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		ImagePath:   req.ImagePath,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		Price:       req.Price,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(product.ID)
}

func (s *catalogService) UpdateProduct(identity model.Identity, id uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, apperr.New(apperr.KindValidation, "price must not be negative")
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "product not found")
	}

	if req.Name != product.Name {
		if existing, _ := s.productRepo.FindByName(req.Name); existing != nil {
			return nil, apperr.Newf(apperr.KindConflict, "product '%s' already exists", req.Name)
		}
	}
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, apperr.New(apperr.KindNotFound, "category not found")
	}

	oldImage := product.ImagePath

	product.Name = req.Name
	product.Description = req.Description
	product.CategoryID = req.CategoryID
	// The preloaded association still points at the old category; left in
	// place, Save would derive the foreign key from it and undo the move.
	product.Category = nil
	product.Price = req.Price
	if req.ImagePath != nil {
		product.ImagePath = req.ImagePath
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	// Replacing the image orphans the old blob; clean it up best-effort.
	// A failed delete is logged and never fails the update.
	if req.ImagePath != nil && oldImage != nil && *oldImage != *req.ImagePath {
		if !s.mediaStore.Delete(*oldImage) {
			log.Printf("could not delete replaced image %s for product %s", *oldImage, product.ID)
		}
	}

	return s.productRepo.FindByID(product.ID)
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "product not found")
		}
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product together with its ledger history and,
// best-effort, its image.
func (s *catalogService) DeleteProduct(identity model.Identity, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return apperr.New(apperr.KindNotFound, "product not found")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.txRepo.DeleteByProduct(tx, id); err != nil {
			return err
		}
		return s.productRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	if product.ImagePath != nil {
		if !s.mediaStore.Delete(*product.ImagePath) {
			log.Printf("could not delete image %s for removed product %s", *product.ImagePath, id)
		}
	}
	return nil
}

func (s *catalogService) ListProducts(filter repository.ProductFilter, page repository.Page) ([]model.Product, int64, error) {
	return s.productRepo.FindAll(filter, page)
}

func (s *catalogService) ListLowStock(threshold int, page repository.Page) ([]model.Product, int64, error) {
	return s.productRepo.FindLowStock(threshold, page)
}

func (s *catalogService) CreateCategory(identity model.Identity, req *CategoryRequest) (*model.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if existing, _ := s.categoryRepo.FindByName(req.Name); existing != nil {
		return nil, apperr.Newf(apperr.KindConflict, "category '%s' already exists", req.Name)
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "category not found")
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(identity model.Identity, id uuid.UUID, req *CategoryRequest) (*model.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "category not found")
	}

	if req.Name != category.Name {
		if existing, _ := s.categoryRepo.FindByName(req.Name); existing != nil {
			return nil, apperr.Newf(apperr.KindConflict, "category '%s' already exists", req.Name)
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses to delete a category that still has products;
// callers must move or delete the products first.
func (s *catalogService) DeleteCategory(identity model.Identity, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return apperr.New(apperr.KindNotFound, "category not found")
	}

	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Newf(apperr.KindConflict, "category still has %d product(s)", count)
	}

	return s.categoryRepo.Delete(id)
}

func (s *catalogService) ListCategories(page repository.Page) ([]model.Category, int64, error) {
	return s.categoryRepo.FindAll(page)
}

func (s *catalogService) CategoryOptions() ([]model.CategoryOption, error) {
	return s.categoryRepo.Options()
}

// validateRequest folds the first struct-validation failure into the error
// taxonomy.
func validateRequest(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return apperr.Newf(apperr.KindValidation, "field '%s' failed on rule '%s'", first.FailedField, first.Tag)
	}
	return nil
}
