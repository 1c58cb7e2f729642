package assetaudit

import (
	"errors"
	"fmt"
	"time"

	"go_assetdb/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors for audit operations
var (
	ErrNotFound      = errors.New("audit record not found")
	ErrAssetNotFound = errors.New("asset not found")
)

// Service manages audit records. An audit references one asset lineage row
// and one or more auditors through audit_users.
type Service struct {
	db *gorm.DB
}

// NewService creates a new asset audit service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Params carries the writable fields of an audit record
type Params struct {
	AssetID     string
	CheckedByID int
	CheckDate   *time.Time
	LocationID  *int
	Status      string
	Remarks     *string
}

func (s *Service) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Asset").
		Preload("Location").
		Preload("AuditUsers.User")
}

// List returns audit records, newest check first. assetID and status narrow
// the result when non-empty.
func (s *Service) List(assetID, status string) ([]model.AssetAudit, error) {
	query := s.db.Model(&model.AssetAudit{})
	if assetID != "" {
		query = query.Where("asset_id = ?", assetID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []model.AssetAudit
	err := s.withRelations(query).
		Order("check_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	return rows, nil
}

// Get returns one audit record by id
func (s *Service) Get(id string) (*model.AssetAudit, error) {
	var row model.AssetAudit
	err := s.withRelations(s.db).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query audit record: %w", err)
	}
	return &row, nil
}

// Create records a new audit together with its auditor link. CheckDate
// defaults to now.
func (s *Service) Create(p Params) (*model.AssetAudit, error) {
	if err := s.assetExists(p.AssetID); err != nil {
		return nil, err
	}

	when := time.Now()
	if p.CheckDate != nil {
		when = *p.CheckDate
	}

	row := &model.AssetAudit{
		ID:         uuid.NewString(),
		AssetID:    p.AssetID,
		CheckDate:  when,
		LocationID: p.LocationID,
		Status:     p.Status,
		Remarks:    p.Remarks,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to create audit record: %w", err)
		}
		link := &model.AuditUser{
			ID:      uuid.NewString(),
			AuditID: row.ID,
			UserID:  p.CheckedByID,
		}
		if err := tx.Create(link).Error; err != nil {
			return fmt.Errorf("failed to link auditor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(row.ID)
}

// Update rewrites an audit record and replaces its auditor link
func (s *Service) Update(id string, p Params) (*model.AssetAudit, error) {
	if err := s.assetExists(p.AssetID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var row model.AssetAudit
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to query audit record: %w", err)
		}

		row.AssetID = p.AssetID
		if p.CheckDate != nil {
			row.CheckDate = *p.CheckDate
		}
		row.LocationID = p.LocationID
		row.Status = p.Status
		row.Remarks = p.Remarks
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to update audit record: %w", err)
		}

		// Replace the auditor link
		if err := tx.Where("audit_id = ?", id).Delete(&model.AuditUser{}).Error; err != nil {
			return fmt.Errorf("failed to unlink auditors: %w", err)
		}
		link := &model.AuditUser{
			ID:      uuid.NewString(),
			AuditID: id,
			UserID:  p.CheckedByID,
		}
		if err := tx.Create(link).Error; err != nil {
			return fmt.Errorf("failed to link auditor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes an audit record and its auditor links
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("audit_id = ?", id).Delete(&model.AuditUser{}).Error; err != nil {
			return fmt.Errorf("failed to unlink auditors: %w", err)
		}

		res := tx.Where("id = ?", id).Delete(&model.AssetAudit{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete audit record: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Service) assetExists(assetID string) error {
	var count int64
	err := s.db.Model(&model.Asset{}).Where("id = ?", assetID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to query asset: %w", err)
	}
	if count == 0 {
		return ErrAssetNotFound
	}
	return nil
}
