package asset

import (
	"fmt"
	"time"

	"go_assetdb/internal/model"
)

// ListFilter narrows the asset list query. Only latest non-deleted rows are
// considered; every field is optional.
type ListFilter struct {
	Page     int
	PageSize int

	// Search matches asset name, asset number or remark (fuzzy)
	Search string

	SortBy    string
	SortOrder string

	Condition    string
	AssetNo      string
	LineNo       string
	CategoryCode string
	AFENo        string
	PONo         string
	TaggingYear  string

	ProjectCodeID     *int
	LocationDescID    *int
	DetailsLocationID *int

	PISDateFrom   *time.Time
	PISDateTo     *time.Time
	TransDateFrom *time.Time
	TransDateTo   *time.Time

	AcqValueMin  *float64
	AcqValueMax  *float64
	BookValueMin *float64
	BookValueMax *float64
}

// Sortable columns, keyed by the JSON field names the client sends
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"assetNo":   "asset_no",
	"assetName": "asset_name",
	"acqValue":  "acq_value",
	"bookValue": "book_value",
	"pisDate":   "pis_date",
	"transDate": "trans_date",
	"version":   "version",
}

// List returns the current latest non-deleted rows matching the filter, with
// total count for pagination
func (s *Service) List(f ListFilter) ([]model.Asset, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}

	query := s.db.Model(&model.Asset{}).
		Where("is_latest = ? AND deleted_at IS NULL", true)

	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("asset_name LIKE ? OR asset_no LIKE ? OR remark LIKE ?", like, like, like)
	}

	if f.Condition != "" {
		query = query.Where("asset_condition = ?", f.Condition)
	}
	if f.AssetNo != "" {
		query = query.Where("asset_no LIKE ?", "%"+f.AssetNo+"%")
	}
	if f.LineNo != "" {
		query = query.Where("line_no LIKE ?", "%"+f.LineNo+"%")
	}
	if f.CategoryCode != "" {
		query = query.Where("category_code = ?", f.CategoryCode)
	}
	if f.AFENo != "" {
		query = query.Where("afe_no LIKE ?", "%"+f.AFENo+"%")
	}
	if f.PONo != "" {
		query = query.Where("po_no LIKE ?", "%"+f.PONo+"%")
	}
	if f.TaggingYear != "" {
		query = query.Where("tagging_year = ?", f.TaggingYear)
	}

	if f.ProjectCodeID != nil {
		query = query.Where("project_code_id = ?", *f.ProjectCodeID)
	}
	if f.LocationDescID != nil {
		query = query.Where("location_desc_id = ?", *f.LocationDescID)
	}
	if f.DetailsLocationID != nil {
		query = query.Where("details_location_id = ?", *f.DetailsLocationID)
	}

	if f.PISDateFrom != nil {
		query = query.Where("pis_date >= ?", *f.PISDateFrom)
	}
	if f.PISDateTo != nil {
		query = query.Where("pis_date <= ?", *f.PISDateTo)
	}
	if f.TransDateFrom != nil {
		query = query.Where("trans_date >= ?", *f.TransDateFrom)
	}
	if f.TransDateTo != nil {
		query = query.Where("trans_date <= ?", *f.TransDateTo)
	}

	if f.AcqValueMin != nil {
		query = query.Where("acq_value >= ?", *f.AcqValueMin)
	}
	if f.AcqValueMax != nil {
		query = query.Where("acq_value <= ?", *f.AcqValueMax)
	}
	if f.BookValueMin != nil {
		query = query.Where("book_value >= ?", *f.BookValueMin)
	}
	if f.BookValueMax != nil {
		query = query.Where("book_value <= ?", *f.BookValueMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	var rows []model.Asset
	err := s.withRelations(query).
		Order(column + " " + direction).
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query assets: %w", err)
	}

	return rows, total, nil
}
