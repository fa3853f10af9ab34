package services

import (
	"context"
	"errors"

	"github.com/localnerve/franchisedb/internal/metrics"
	"github.com/localnerve/franchisedb/internal/models"
	"github.com/localnerve/franchisedb/internal/repositories"
	"github.com/localnerve/franchisedb/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const productEntity = "product"

// ProductService applies the product business rules
type ProductService struct {
	products *repositories.ProductRepository
	branches *repositories.BranchRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		products: repositories.NewProductRepository(db),
		branches: repositories.NewBranchRepository(db),
	}
}

// Create adds a product to a branch. Product names are unique within their
// branch and the stock quantity must not be negative.
func (s *ProductService) Create(ctx context.Context, name string, stockQuantity int, branchID uint64) (product *models.Product, err error) {
	defer func() {
		metrics.RecordOperation(productEntity, "create", err)
		logResult(ctx, "create product", err, zap.String("name", name), zap.Uint64("branch_id", branchID))
	}()

	if name, err = normalizeName(productEntity, name); err != nil {
		return nil, err
	}
	if err = validateStock(stockQuantity); err != nil {
		return nil, err
	}
	if err = s.ensureBranch(ctx, branchID); err != nil {
		return nil, err
	}
	if err = s.ensureNameAvailable(ctx, name, branchID, 0); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, name, stockQuantity, branchID)
}

// GetByID returns nil when the product does not exist
func (s *ProductService) GetByID(ctx context.Context, id uint64) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return product, err
}

func (s *ProductService) GetAll(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

// GetByBranch fails with a NotFoundError when the branch does not exist
func (s *ProductService) GetByBranch(ctx context.Context, branchID uint64) ([]models.Product, error) {
	if err := s.ensureBranch(ctx, branchID); err != nil {
		return nil, err
	}
	return s.products.GetByBranchID(ctx, branchID)
}

// Update renames a product. It returns nil when the product does not exist.
func (s *ProductService) Update(ctx context.Context, id uint64, name string) (product *models.Product, err error) {
	defer func() {
		metrics.RecordOperation(productEntity, "update", err)
		logResult(ctx, "update product", err, zap.Uint64("id", id))
	}()

	current, err := s.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	if name, err = normalizeName(productEntity, name); err != nil {
		return nil, err
	}
	if err = s.ensureNameAvailable(ctx, name, current.BranchID, id); err != nil {
		return nil, err
	}

	product, err = s.products.UpdateName(ctx, id, name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return product, err
}

// UpdateStock sets the stock of a product. It returns nil when the product
// does not exist; a negative quantity is rejected without touching the row.
func (s *ProductService) UpdateStock(ctx context.Context, id uint64, stockQuantity int) (product *models.Product, err error) {
	defer func() {
		metrics.RecordOperation(productEntity, "update_stock", err)
		logResult(ctx, "update stock", err, zap.Uint64("id", id), zap.Int("stock_quantity", stockQuantity))
	}()

	exists, err := s.products.Exists(ctx, id)
	if err != nil || !exists {
		return nil, err
	}
	if err = validateStock(stockQuantity); err != nil {
		return nil, err
	}

	product, err = s.products.UpdateStock(ctx, id, stockQuantity)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return product, err
}

// Delete returns false when the product does not exist
func (s *ProductService) Delete(ctx context.Context, id uint64) (deleted bool, err error) {
	defer func() {
		metrics.RecordOperation(productEntity, "delete", err)
		logResult(ctx, "delete product", err, zap.Uint64("id", id))
	}()

	return s.products.Delete(ctx, id)
}

func (s *ProductService) Exists(ctx context.Context, id uint64) (bool, error) {
	return s.products.Exists(ctx, id)
}

func (s *ProductService) BelongsTo(ctx context.Context, productID, branchID uint64) (bool, error) {
	return s.products.BelongsToBranch(ctx, productID, branchID)
}

func (s *ProductService) ensureBranch(ctx context.Context, branchID uint64) error {
	exists, err := s.branches.Exists(ctx, branchID)
	if err != nil {
		return err
	}
	if !exists {
		return types.NewNotFoundError("branch.not_found", "Branch with ID %d not found", branchID)
	}
	return nil
}

func (s *ProductService) ensureNameAvailable(ctx context.Context, name string, branchID, selfID uint64) error {
	return ensureUnique(productEntity, name, selfID, func() (uint64, error) {
		existing, err := s.products.GetByNameAndBranch(ctx, name, branchID)
		if err != nil {
			return 0, err
		}
		return existing.ID, nil
	})
}

func validateStock(stockQuantity int) error {
	if stockQuantity < 0 {
		return types.NewValidationError("product.validation.stock", "The stock quantity cannot be negative")
	}
	return nil
}
