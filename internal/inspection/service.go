package inspection

import (
	"errors"
	"fmt"
	"time"

	"go_assetdb/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors for inspection operations
var (
	ErrNotFound      = errors.New("inspection not found")
	ErrAssetNotFound = errors.New("asset not found")
	ErrItemNotFound  = errors.New("inspection item not found")
)

// Service manages inspection rounds and their items. Items pin the exact
// asset version that was inspected, so asset updates never rewrite history.
type Service struct {
	db *gorm.DB
}

// NewService creates a new inspection service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all inspections, newest first, with inspector and items
func (s *Service) List() ([]model.Inspection, error) {
	var rows []model.Inspection
	err := s.db.
		Preload("Inspector").
		Preload("Items.Asset").
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query inspections: %w", err)
	}
	return rows, nil
}

// Get returns one inspection by id
func (s *Service) Get(id string) (*model.Inspection, error) {
	var row model.Inspection
	err := s.db.
		Preload("Inspector").
		Preload("Items.Asset").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query inspection: %w", err)
	}
	return &row, nil
}

// Create records a new inspection round. Date defaults to now.
func (s *Service) Create(inspectorID int, date *time.Time, notes *string) (*model.Inspection, error) {
	when := time.Now()
	if date != nil {
		when = *date
	}

	row := &model.Inspection{
		ID:          uuid.NewString(),
		InspectorID: inspectorID,
		Date:        when,
		Notes:       notes,
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create inspection: %w", err)
	}
	return row, nil
}

// Update changes the notes and/or date of an inspection
func (s *Service) Update(id string, date *time.Time, notes *string) (*model.Inspection, error) {
	row, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if date != nil {
		updates["date"] = *date
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) > 0 {
		if err := s.db.Model(row).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update inspection: %w", err)
		}
	}
	return row, nil
}

// Delete removes an inspection and its items
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Inspection{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete inspection: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("inspection_id = ?", id).Delete(&model.InspectionItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete inspection items: %w", err)
		}
		return nil
	})
}

// AddItem attaches an asset version to an inspection. Both the inspection and
// the asset row must exist; the version is taken from the caller so a stale
// client pins the version it actually looked at.
func (s *Service) AddItem(inspectionID, assetID string, assetVersion int) (*model.InspectionItem, error) {
	var inspection model.Inspection
	if err := s.db.Where("id = ?", inspectionID).First(&inspection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query inspection: %w", err)
	}

	var asset model.Asset
	if err := s.db.Where("id = ?", assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}

	item := &model.InspectionItem{
		ID:           uuid.NewString(),
		InspectionID: inspectionID,
		AssetID:      assetID,
		AssetVersion: assetVersion,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inspection item: %w", err)
	}

	item.Asset = &asset
	return item, nil
}

// RemoveItem detaches one item from its inspection
func (s *Service) RemoveItem(itemID string) error {
	res := s.db.Where("id = ?", itemID).Delete(&model.InspectionItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete inspection item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
