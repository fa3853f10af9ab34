package repositories

import (
	"context"

	"github.com/localnerve/franchisedb/internal/models"
	"gorm.io/gorm"
)

// BranchRepository is data access for branches
type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) Create(ctx context.Context, name string, franchiseID uint64) (*models.Branch, error) {
	branch := models.Branch{Name: name, FranchiseID: franchiseID}
	if err := r.db.WithContext(ctx).Create(&branch).Error; err != nil {
		return nil, translateError(err, "branch")
	}
	return &branch, nil
}

// GetByID returns ErrNotFound when the branch does not exist
func (r *BranchRepository) GetByID(ctx context.Context, id uint64) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, translateError(err, "branch")
	}
	return &branch, nil
}

func (r *BranchRepository) GetByFranchiseID(ctx context.Context, franchiseID uint64) ([]models.Branch, error) {
	branches := []models.Branch{}
	if err := r.db.WithContext(ctx).Where("franchise_id = ?", franchiseID).Order("id").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// GetByNameAndFranchise returns ErrNotFound when the franchise has no branch with this name
func (r *BranchRepository) GetByNameAndFranchise(ctx context.Context, name string, franchiseID uint64) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).
		Where("name = ? AND franchise_id = ?", name, franchiseID).
		First(&branch).Error
	if err != nil {
		return nil, translateError(err, "branch")
	}
	return &branch, nil
}

func (r *BranchRepository) GetAll(ctx context.Context) ([]models.Branch, error) {
	branches := []models.Branch{}
	if err := r.db.WithContext(ctx).Order("id").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// UpdateName renames the branch and refreshes updated_at
func (r *BranchRepository) UpdateName(ctx context.Context, id uint64, name string) (*models.Branch, error) {
	branch, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(branch).Update("name", name).Error; err != nil {
		return nil, translateError(err, "branch")
	}
	return branch, nil
}

// Delete removes the branch and its products in one transaction.
// It reports false when the branch did not exist.
func (r *BranchRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	var deleted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("branch_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Branch{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})

	return deleted, err
}

func (r *BranchRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Branch{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BranchRepository) BelongsToFranchise(ctx context.Context, id, franchiseID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Branch{}).
		Where("id = ? AND franchise_id = ?", id, franchiseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
