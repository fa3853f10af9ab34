package repositories

import (
	"context"

	"github.com/localnerve/franchisedb/internal/models"
	"gorm.io/gorm"
)

// FranchiseRepository is data access for franchises
type FranchiseRepository struct {
	db *gorm.DB
}

func NewFranchiseRepository(db *gorm.DB) *FranchiseRepository {
	return &FranchiseRepository{db: db}
}

func (r *FranchiseRepository) Create(ctx context.Context, name string) (*models.Franchise, error) {
	franchise := models.Franchise{Name: name}
	if err := r.db.WithContext(ctx).Create(&franchise).Error; err != nil {
		return nil, translateError(err, "franchise")
	}
	return &franchise, nil
}

// GetByID returns ErrNotFound when the franchise does not exist
func (r *FranchiseRepository) GetByID(ctx context.Context, id uint64) (*models.Franchise, error) {
	var franchise models.Franchise
	if err := r.db.WithContext(ctx).First(&franchise, id).Error; err != nil {
		return nil, translateError(err, "franchise")
	}
	return &franchise, nil
}

// GetByName returns ErrNotFound when no franchise has exactly this name
func (r *FranchiseRepository) GetByName(ctx context.Context, name string) (*models.Franchise, error) {
	var franchise models.Franchise
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&franchise).Error; err != nil {
		return nil, translateError(err, "franchise")
	}
	return &franchise, nil
}

func (r *FranchiseRepository) GetAll(ctx context.Context) ([]models.Franchise, error) {
	franchises := []models.Franchise{}
	if err := r.db.WithContext(ctx).Order("id").Find(&franchises).Error; err != nil {
		return nil, err
	}
	return franchises, nil
}

// UpdateName renames the franchise and refreshes updated_at
func (r *FranchiseRepository) UpdateName(ctx context.Context, id uint64, name string) (*models.Franchise, error) {
	franchise, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(franchise).Update("name", name).Error; err != nil {
		return nil, translateError(err, "franchise")
	}
	return franchise, nil
}

// Delete removes the franchise, its branches and their products in one
// transaction. It reports false when the franchise did not exist.
func (r *FranchiseRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	var deleted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		branchIDs := tx.Model(&models.Branch{}).Select("id").Where("franchise_id = ?", id)
		if err := tx.Where("branch_id IN (?)", branchIDs).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("franchise_id = ?", id).Delete(&models.Branch{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Franchise{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})

	return deleted, err
}

func (r *FranchiseRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Franchise{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
