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

const branchEntity = "branch"

// BranchService applies the branch business rules
type BranchService struct {
	branches   *repositories.BranchRepository
	franchises *repositories.FranchiseRepository
}

func NewBranchService(db *gorm.DB) *BranchService {
	return &BranchService{
		branches:   repositories.NewBranchRepository(db),
		franchises: repositories.NewFranchiseRepository(db),
	}
}

// Create adds a branch to a franchise. Branch names are unique within their franchise.
func (s *BranchService) Create(ctx context.Context, name string, franchiseID uint64) (branch *models.Branch, err error) {
	defer func() {
		metrics.RecordOperation(branchEntity, "create", err)
		logResult(ctx, "create branch", err, zap.String("name", name), zap.Uint64("franchise_id", franchiseID))
	}()

	if name, err = normalizeName(branchEntity, name); err != nil {
		return nil, err
	}
	if err = s.ensureFranchise(ctx, franchiseID); err != nil {
		return nil, err
	}
	if err = s.ensureNameAvailable(ctx, name, franchiseID, 0); err != nil {
		return nil, err
	}
	return s.branches.Create(ctx, name, franchiseID)
}

// GetByID returns nil when the branch does not exist
func (s *BranchService) GetByID(ctx context.Context, id uint64) (*models.Branch, error) {
	branch, err := s.branches.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return branch, err
}

func (s *BranchService) GetAll(ctx context.Context) ([]models.Branch, error) {
	return s.branches.GetAll(ctx)
}

// GetByFranchise lists the branches of a franchise, failing with a
// NotFoundError when the franchise does not exist.
func (s *BranchService) GetByFranchise(ctx context.Context, franchiseID uint64) ([]models.Branch, error) {
	if err := s.ensureFranchise(ctx, franchiseID); err != nil {
		return nil, err
	}
	return s.branches.GetByFranchiseID(ctx, franchiseID)
}

// Update renames a branch. It returns nil when the branch does not exist.
func (s *BranchService) Update(ctx context.Context, id uint64, name string) (branch *models.Branch, err error) {
	defer func() {
		metrics.RecordOperation(branchEntity, "update", err)
		logResult(ctx, "update branch", err, zap.Uint64("id", id))
	}()

	current, err := s.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	if name, err = normalizeName(branchEntity, name); err != nil {
		return nil, err
	}
	if err = s.ensureNameAvailable(ctx, name, current.FranchiseID, id); err != nil {
		return nil, err
	}

	branch, err = s.branches.UpdateName(ctx, id, name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return branch, err
}

// Delete removes the branch and its products. It returns false when the branch does not exist.
func (s *BranchService) Delete(ctx context.Context, id uint64) (deleted bool, err error) {
	defer func() {
		metrics.RecordOperation(branchEntity, "delete", err)
		logResult(ctx, "delete branch", err, zap.Uint64("id", id))
	}()

	return s.branches.Delete(ctx, id)
}

func (s *BranchService) Exists(ctx context.Context, id uint64) (bool, error) {
	return s.branches.Exists(ctx, id)
}

func (s *BranchService) BelongsTo(ctx context.Context, branchID, franchiseID uint64) (bool, error) {
	return s.branches.BelongsToFranchise(ctx, branchID, franchiseID)
}

func (s *BranchService) ensureFranchise(ctx context.Context, franchiseID uint64) error {
	exists, err := s.franchises.Exists(ctx, franchiseID)
	if err != nil {
		return err
	}
	if !exists {
		return types.NewNotFoundError("franchise.not_found", "Franchise with ID %d not found", franchiseID)
	}
	return nil
}

func (s *BranchService) ensureNameAvailable(ctx context.Context, name string, franchiseID, selfID uint64) error {
	return ensureUnique(branchEntity, name, selfID, func() (uint64, error) {
		existing, err := s.branches.GetByNameAndFranchise(ctx, name, franchiseID)
		if err != nil {
			return 0, err
		}
		return existing.ID, nil
	})
}
