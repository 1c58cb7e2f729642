package asset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go_assetdb/internal/model"

	"gorm.io/datatypes"
)

// Sentinel errors returned by the version store. Handlers map these to HTTP
// status codes via httpx.
var (
	// ErrNotFound means the requested lineage does not exist or is soft-deleted.
	ErrNotFound = errors.New("asset not found")

	// ErrConflict means the referenced row is not the current latest version
	// (it was superseded or deleted since the caller read it). The caller
	// should re-fetch the latest row and retry the business operation.
	ErrConflict = errors.New("asset not found or already versioned")
)

// ValidationError reports malformed or missing attributes on create/update.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid asset attributes"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid asset attributes: " + strings.Join(parts, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Attributes is the complete set of business fields carried by every asset
// version. Versioning fields (id, version, isLatest, parentId, deletedAt) are
// owned by the store and never appear here.
type Attributes struct {
	AssetNo      string
	LineNo       string
	AssetName    string
	Remark       *string
	Condition    string
	PISDate      time.Time
	TransDate    time.Time
	CategoryCode string
	AFENo        *string
	PONo         *string
	TaggingYear  *string

	AdjustedDepre float64
	AcqValueIDR   float64
	AcqValue      float64
	AccumDepre    float64
	YTDDepre      float64
	BookValue     float64

	Photos datatypes.JSON

	ProjectCodeID     *int
	LocationDescID    *int
	DetailsLocationID *int
}

// Validate checks required fields and value sanity
func (a *Attributes) Validate() error {
	verr := newValidationError()

	if strings.TrimSpace(a.AssetNo) == "" {
		verr.Fields["assetNo"] = "required"
	}
	if strings.TrimSpace(a.AssetName) == "" {
		verr.Fields["assetName"] = "required"
	}
	if strings.TrimSpace(a.LineNo) == "" {
		verr.Fields["lineNo"] = "required"
	}
	if strings.TrimSpace(a.Condition) == "" {
		verr.Fields["condition"] = "required"
	}
	if strings.TrimSpace(a.CategoryCode) == "" {
		verr.Fields["categoryCode"] = "required"
	}
	if a.PISDate.IsZero() {
		verr.Fields["pisDate"] = "required"
	}
	if a.TransDate.IsZero() {
		verr.Fields["transDate"] = "required"
	}

	numeric := map[string]float64{
		"adjustedDepre": a.AdjustedDepre,
		"acqValueIdr":   a.AcqValueIDR,
		"acqValue":      a.AcqValue,
		"accumDepre":    a.AccumDepre,
		"ytdDepre":      a.YTDDepre,
		"bookValue":     a.BookValue,
	}
	for name, v := range numeric {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			verr.Fields[name] = "not a finite number"
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Patch is a partial attribute override applied on update. A nil field keeps
// the prior version's value.
type Patch struct {
	AssetNo      *string
	LineNo       *string
	AssetName    *string
	Remark       *string
	Condition    *string
	PISDate      *time.Time
	TransDate    *time.Time
	CategoryCode *string
	AFENo        *string
	PONo         *string
	TaggingYear  *string

	AdjustedDepre *float64
	AcqValueIDR   *float64
	AcqValue      *float64
	AccumDepre    *float64
	YTDDepre      *float64
	BookValue     *float64

	Photos datatypes.JSON

	ProjectCodeID     *int
	LocationDescID    *int
	DetailsLocationID *int
}

// Merge returns old with every non-nil field of p applied. It is a
// pure function so the carry-over rule stays testable in isolation.
func Merge(old Attributes, p Patch) Attributes {
	merged := old

	if p.AssetNo != nil {
		merged.AssetNo = *p.AssetNo
	}
	if p.LineNo != nil {
		merged.LineNo = *p.LineNo
	}
	if p.AssetName != nil {
		merged.AssetName = *p.AssetName
	}
	if p.Remark != nil {
		merged.Remark = p.Remark
	}
	if p.Condition != nil {
		merged.Condition = *p.Condition
	}
	if p.PISDate != nil {
		merged.PISDate = *p.PISDate
	}
	if p.TransDate != nil {
		merged.TransDate = *p.TransDate
	}
	if p.CategoryCode != nil {
		merged.CategoryCode = *p.CategoryCode
	}
	if p.AFENo != nil {
		merged.AFENo = p.AFENo
	}
	if p.PONo != nil {
		merged.PONo = p.PONo
	}
	if p.TaggingYear != nil {
		merged.TaggingYear = p.TaggingYear
	}
	if p.AdjustedDepre != nil {
		merged.AdjustedDepre = *p.AdjustedDepre
	}
	if p.AcqValueIDR != nil {
		merged.AcqValueIDR = *p.AcqValueIDR
	}
	if p.AcqValue != nil {
		merged.AcqValue = *p.AcqValue
	}
	if p.AccumDepre != nil {
		merged.AccumDepre = *p.AccumDepre
	}
	if p.YTDDepre != nil {
		merged.YTDDepre = *p.YTDDepre
	}
	if p.BookValue != nil {
		merged.BookValue = *p.BookValue
	}
	if p.Photos != nil {
		merged.Photos = p.Photos
	}
	if p.ProjectCodeID != nil {
		merged.ProjectCodeID = p.ProjectCodeID
	}
	if p.LocationDescID != nil {
		merged.LocationDescID = p.LocationDescID
	}
	if p.DetailsLocationID != nil {
		merged.DetailsLocationID = p.DetailsLocationID
	}

	return merged
}

// attributesOf extracts the business attributes from a stored row
func attributesOf(row *model.Asset) Attributes {
	return Attributes{
		AssetNo:           row.AssetNo,
		LineNo:            row.LineNo,
		AssetName:         row.AssetName,
		Remark:            row.Remark,
		Condition:         row.Condition,
		PISDate:           row.PISDate,
		TransDate:         row.TransDate,
		CategoryCode:      row.CategoryCode,
		AFENo:             row.AFENo,
		PONo:              row.PONo,
		TaggingYear:       row.TaggingYear,
		AdjustedDepre:     row.AdjustedDepre,
		AcqValueIDR:       row.AcqValueIDR,
		AcqValue:          row.AcqValue,
		AccumDepre:        row.AccumDepre,
		YTDDepre:          row.YTDDepre,
		BookValue:         row.BookValue,
		Photos:            row.Photos,
		ProjectCodeID:     row.ProjectCodeID,
		LocationDescID:    row.LocationDescID,
		DetailsLocationID: row.DetailsLocationID,
	}
}

// assign copies the business attributes onto a row
func (a Attributes) assign(row *model.Asset) {
	row.AssetNo = a.AssetNo
	row.LineNo = a.LineNo
	row.AssetName = a.AssetName
	row.Remark = a.Remark
	row.Condition = a.Condition
	row.PISDate = a.PISDate
	row.TransDate = a.TransDate
	row.CategoryCode = a.CategoryCode
	row.AFENo = a.AFENo
	row.PONo = a.PONo
	row.TaggingYear = a.TaggingYear
	row.AdjustedDepre = a.AdjustedDepre
	row.AcqValueIDR = a.AcqValueIDR
	row.AcqValue = a.AcqValue
	row.AccumDepre = a.AccumDepre
	row.YTDDepre = a.YTDDepre
	row.BookValue = a.BookValue
	row.Photos = a.Photos
	row.ProjectCodeID = a.ProjectCodeID
	row.LocationDescID = a.LocationDescID
	row.DetailsLocationID = a.DetailsLocationID
}
