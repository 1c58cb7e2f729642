package asset

import (
	"errors"
	"fmt"
	"time"

	"go_assetdb/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service is the asset version store. Every update inserts a new row and
// flips the previous one to non-latest inside a single transaction, so the
// single-latest invariant holds even under concurrent updates.
type Service struct {
	db *gorm.DB
}

// NewService creates a new asset version store backed by db
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create inserts the first version of a new lineage
func (s *Service) Create(attrs Attributes) (*model.Asset, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	row := &model.Asset{
		ID:       uuid.NewString(),
		Version:  1,
		IsLatest: true,
		ParentID: nil,
	}
	attrs.assign(row)

	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"assetId": row.ID,
		"assetNo": row.AssetNo,
	}).Info("asset created")

	return row, nil
}

// GetLatest returns the row with the given id if it is the current latest,
// non-deleted version of its lineage
func (s *Service) GetLatest(id string) (*model.Asset, error) {
	var row model.Asset
	err := s.withRelations(s.db).
		Where("id = ? AND is_latest = ? AND deleted_at IS NULL", id, true).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}
	return &row, nil
}

// GetByAssetNo returns the latest non-deleted version carrying the given
// human-readable asset number
func (s *Service) GetByAssetNo(assetNo string) (*model.Asset, error) {
	var row model.Asset
	err := s.withRelations(s.db).
		Where("asset_no = ? AND is_latest = ? AND deleted_at IS NULL", assetNo, true).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}
	return &row, nil
}

// GetByID returns any row by id, historical and soft-deleted versions
// included. Used for audit reads and inspection history.
func (s *Service) GetByID(id string) (*model.Asset, error) {
	var row model.Asset
	err := s.withRelations(s.db).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}
	return &row, nil
}

// ListVersions returns the full lineage of the asset carrying the given asset
// number, newest version first
func (s *Service) ListVersions(assetNo string) ([]model.Asset, error) {
	var anchor model.Asset
	err := s.db.Where("asset_no = ?", assetNo).
		Order("version DESC").
		First(&anchor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}

	root := anchor.RootID()
	var rows []model.Asset
	err = s.withRelations(s.db).
		Where("id = ? OR parent_id = ?", root, root).
		Order("version DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query asset versions: %w", err)
	}
	return rows, nil
}

// Update creates a new version from the row identified by id. The referenced
// row must still be the latest non-deleted version; the precondition check and
// the flip/insert pair run in one transaction with the flip guarded by a
// compare-and-swap, so two racing updates cannot both produce a latest row.
func (s *Service) Update(id string, p Patch) (*model.Asset, error) {
	var created *model.Asset

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var old model.Asset
		if err := tx.Where("id = ?", id).First(&old).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConflict
			}
			return fmt.Errorf("failed to query asset: %w", err)
		}

		// Flip the old row to non-latest. The guard re-checks the
		// precondition at write time; zero rows affected means another
		// update or delete got there first.
		res := tx.Model(&model.Asset{}).
			Where("id = ? AND is_latest = ? AND deleted_at IS NULL", id, true).
			Update("is_latest", false)
		if res.Error != nil {
			return fmt.Errorf("failed to supersede asset version: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		merged := Merge(attributesOf(&old), p)
		if err := merged.Validate(); err != nil {
			return err
		}

		parentID := old.RootID()
		row := &model.Asset{
			ID:       uuid.NewString(),
			Version:  old.Version + 1,
			IsLatest: true,
			ParentID: &parentID,
		}
		merged.assign(row)

		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to create asset version: %w", err)
		}

		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"assetId": created.ID,
		"assetNo": created.AssetNo,
		"version": created.Version,
	}).Info("asset version created")

	return created, nil
}

// SoftDelete marks the row identified by id as deleted. Only the current
// latest, non-deleted version can be deleted; historical rows stay untouched
// for audit reads.
func (s *Service) SoftDelete(id string) error {
	res := s.db.Model(&model.Asset{}).
		Where("id = ? AND is_latest = ? AND deleted_at IS NULL", id, true).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("failed to delete asset: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	logrus.WithField("assetId", id).Info("asset soft-deleted")
	return nil
}

func (s *Service) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("ProjectCode").Preload("LocationDesc").Preload("DetailsLocation")
}
