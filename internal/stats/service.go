package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_assetdb/internal/cache"
	"go_assetdb/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service computes dashboard statistics over the current latest, non-deleted
// asset rows. Results are cached in Redis with a short TTL; asset writes
// invalidate the cache.
type Service struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewService creates a new statistics service
func NewService(db *gorm.DB, ttl time.Duration) *Service {
	return &Service{db: db, ttl: ttl}
}

// Overview holds the headline numbers for the dashboard
type Overview struct {
	TotalAssets      int64        `json:"totalAssets"`
	TotalAcqValueIDR float64      `json:"totalAcqValueIdr"`
	TotalBookValue   float64      `json:"totalBookValue"`
	NewestAsset      *NewestAsset `json:"newestAsset"`
}

// NewestAsset identifies the most recently registered asset
type NewestAsset struct {
	AssetName    string    `json:"assetName"`
	CategoryCode string    `json:"categoryCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CategoryCount is the number of active assets in one category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// LocationCount is the number of active assets at one location
type LocationCount struct {
	LocationID  int    `json:"locationId"`
	Description string `json:"description"`
	Count       int64  `json:"count"`
}

func (s *Service) active() *gorm.DB {
	return s.db.Model(&model.Asset{}).
		Where("is_latest = ? AND deleted_at IS NULL", true)
}

// Overview returns the headline statistics
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var cached Overview
	if hit, err := cache.GetJSON(ctx, cache.KeyStatsOverview, &cached); err != nil {
		logrus.WithError(err).Warn("stats cache read failed")
	} else if hit {
		return &cached, nil
	}

	var out Overview

	if err := s.active().Count(&out.TotalAssets).Error; err != nil {
		return nil, fmt.Errorf("failed to count assets: %w", err)
	}

	sums := struct {
		AcqValueIDR float64
		BookValue   float64
	}{}
	err := s.active().
		Select("COALESCE(SUM(acq_value_idr), 0) AS acq_value_idr, COALESCE(SUM(book_value), 0) AS book_value").
		Scan(&sums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum asset values: %w", err)
	}
	out.TotalAcqValueIDR = sums.AcqValueIDR
	out.TotalBookValue = sums.BookValue

	var newest model.Asset
	err = s.active().Order("created_at DESC").First(&newest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query newest asset: %w", err)
	}
	if err == nil {
		out.NewestAsset = &NewestAsset{
			AssetName:    newest.AssetName,
			CategoryCode: newest.CategoryCode,
			CreatedAt:    newest.CreatedAt,
		}
	}

	if err := cache.SetJSON(ctx, cache.KeyStatsOverview, &out, s.ttl); err != nil {
		logrus.WithError(err).Warn("stats cache write failed")
	}
	return &out, nil
}

// ByCategory returns active asset counts per category, largest first
func (s *Service) ByCategory(ctx context.Context) ([]CategoryCount, error) {
	var cached []CategoryCount
	if hit, err := cache.GetJSON(ctx, cache.KeyStatsByCategory, &cached); err != nil {
		logrus.WithError(err).Warn("stats cache read failed")
	} else if hit {
		return cached, nil
	}

	var rows []CategoryCount
	err := s.active().
		Select("category_code AS category, COUNT(*) AS count").
		Group("category_code").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group assets by category: %w", err)
	}

	if err := cache.SetJSON(ctx, cache.KeyStatsByCategory, rows, s.ttl); err != nil {
		logrus.WithError(err).Warn("stats cache write failed")
	}
	return rows, nil
}

// ByLocation returns active asset counts per location, largest first
func (s *Service) ByLocation(ctx context.Context) ([]LocationCount, error) {
	var cached []LocationCount
	if hit, err := cache.GetJSON(ctx, cache.KeyStatsByLocation, &cached); err != nil {
		logrus.WithError(err).Warn("stats cache read failed")
	} else if hit {
		return cached, nil
	}

	var rows []LocationCount
	err := s.db.Model(&model.Asset{}).
		Select("assets.location_desc_id AS location_id, location_descs.description AS description, COUNT(*) AS count").
		Joins("LEFT JOIN location_descs ON location_descs.id = assets.location_desc_id").
		Where("assets.is_latest = ? AND assets.deleted_at IS NULL AND assets.location_desc_id IS NOT NULL", true).
		Group("assets.location_desc_id, location_descs.description").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group assets by location: %w", err)
	}

	if err := cache.SetJSON(ctx, cache.KeyStatsByLocation, rows, s.ttl); err != nil {
		logrus.WithError(err).Warn("stats cache write failed")
	}
	return rows, nil
}
