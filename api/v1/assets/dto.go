package assets

import (
	"strconv"
	"strings"
	"time"

	"go_assetdb/internal/asset"

	"gorm.io/datatypes"
)

// numberField accepts either a JSON number or a numeric string, the way
// spreadsheet imports and form clients send values. Parsing is deferred so a
// bad value reports the offending field instead of a generic decode error.
type numberField struct {
	set bool
	raw string
}

// UnmarshalJSON records the raw token; parsing happens in float()
func (n *numberField) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "null" {
		return nil
	}
	n.set = true
	n.raw = strings.TrimSpace(s)
	return nil
}

func (n *numberField) float(name string, fields map[string]string) *float64 {
	if !n.set || n.raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(n.raw, 64)
	if err != nil {
		fields[name] = "not a number"
		return nil
	}
	return &v
}

// dateField accepts "2006-01-02" or RFC 3339 timestamps
type dateField struct {
	set bool
	raw string
}

// UnmarshalJSON records the raw token; parsing happens in date()
func (d *dateField) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "null" {
		return nil
	}
	d.set = true
	d.raw = strings.TrimSpace(s)
	return nil
}

func (d *dateField) date(name string, fields map[string]string) *time.Time {
	if !d.set || d.raw == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", d.raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, d.raw); err == nil {
		return &t
	}
	fields[name] = "not a valid date"
	return nil
}

// assetPayload is the request body for create and update. Every field is
// optional at the decoding level; required-field checks happen in the store so
// create and update share one rule set.
type assetPayload struct {
	AssetNo      *string     `json:"assetNo"`
	LineNo       *string     `json:"lineNo"`
	AssetName    *string     `json:"assetName"`
	Remark       *string     `json:"remark"`
	Condition    *string     `json:"condition"`
	PISDate      dateField   `json:"pisDate"`
	TransDate    dateField   `json:"transDate"`
	CategoryCode *string     `json:"categoryCode"`
	AFENo        *string     `json:"afeNo"`
	PONo         *string     `json:"poNo"`
	TaggingYear  *string     `json:"taggingYear"`

	AdjustedDepre numberField `json:"adjustedDepre"`
	AcqValueIDR   numberField `json:"acqValueIdr"`
	AcqValue      numberField `json:"acqValue"`
	AccumDepre    numberField `json:"accumDepre"`
	YTDDepre      numberField `json:"ytdDepre"`
	BookValue     numberField `json:"bookValue"`

	Photos datatypes.JSON `json:"photos"`

	ProjectCodeID     *int `json:"projectCodeId"`
	LocationDescID    *int `json:"locationDescId"`
	DetailsLocationID *int `json:"detailsLocationId"`
}

// toPatch converts the payload into a store patch. Unparseable numbers and
// dates come back as a ValidationError naming each bad field.
func (p *assetPayload) toPatch() (asset.Patch, error) {
	fields := make(map[string]string)

	patch := asset.Patch{
		AssetNo:      p.AssetNo,
		LineNo:       p.LineNo,
		AssetName:    p.AssetName,
		Remark:       p.Remark,
		Condition:    p.Condition,
		CategoryCode: p.CategoryCode,
		AFENo:        p.AFENo,
		PONo:         p.PONo,
		TaggingYear:  p.TaggingYear,

		PISDate:   p.PISDate.date("pisDate", fields),
		TransDate: p.TransDate.date("transDate", fields),

		AdjustedDepre: p.AdjustedDepre.float("adjustedDepre", fields),
		AcqValueIDR:   p.AcqValueIDR.float("acqValueIdr", fields),
		AcqValue:      p.AcqValue.float("acqValue", fields),
		AccumDepre:    p.AccumDepre.float("accumDepre", fields),
		YTDDepre:      p.YTDDepre.float("ytdDepre", fields),
		BookValue:     p.BookValue.float("bookValue", fields),

		Photos: p.Photos,

		ProjectCodeID:     p.ProjectCodeID,
		LocationDescID:    p.LocationDescID,
		DetailsLocationID: p.DetailsLocationID,
	}

	if len(fields) > 0 {
		return asset.Patch{}, &asset.ValidationError{Fields: fields}
	}
	return patch, nil
}

// toAttributes builds a full attribute set for create
func (p *assetPayload) toAttributes() (asset.Attributes, error) {
	patch, err := p.toPatch()
	if err != nil {
		return asset.Attributes{}, err
	}
	return asset.Merge(asset.Attributes{}, patch), nil
}

// listQuery binds the list endpoint's query string
type listQuery struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=10"`

	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`

	Condition    string `form:"condition"`
	AssetNo      string `form:"assetNo"`
	LineNo       string `form:"lineNo"`
	CategoryCode string `form:"categoryCode"`
	AFENo        string `form:"afeNo"`
	PONo         string `form:"poNo"`
	TaggingYear  string `form:"taggingYear"`

	ProjectCodeID     *int `form:"projectCodeId"`
	LocationDescID    *int `form:"locationDescId"`
	DetailsLocationID *int `form:"detailsLocationId"`

	PISDateFrom   string `form:"pisDateFrom"`
	PISDateTo     string `form:"pisDateTo"`
	TransDateFrom string `form:"transDateFrom"`
	TransDateTo   string `form:"transDateTo"`

	AcqValueMin  string `form:"acqValueMin"`
	AcqValueMax  string `form:"acqValueMax"`
	BookValueMin string `form:"bookValueMin"`
	BookValueMax string `form:"bookValueMax"`
}

func parseQueryDate(raw, name string, fields map[string]string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	fields[name] = "not a valid date"
	return nil
}

func parseQueryFloat(raw, name string, fields map[string]string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fields[name] = "not a number"
		return nil
	}
	return &v
}

// toFilter converts the bound query into a store filter
func (q *listQuery) toFilter() (asset.ListFilter, error) {
	fields := make(map[string]string)

	f := asset.ListFilter{
		Page:     q.Page,
		PageSize: q.PageSize,

		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,

		Condition:    q.Condition,
		AssetNo:      q.AssetNo,
		LineNo:       q.LineNo,
		CategoryCode: q.CategoryCode,
		AFENo:        q.AFENo,
		PONo:         q.PONo,
		TaggingYear:  q.TaggingYear,

		ProjectCodeID:     q.ProjectCodeID,
		LocationDescID:    q.LocationDescID,
		DetailsLocationID: q.DetailsLocationID,

		PISDateFrom:   parseQueryDate(q.PISDateFrom, "pisDateFrom", fields),
		PISDateTo:     parseQueryDate(q.PISDateTo, "pisDateTo", fields),
		TransDateFrom: parseQueryDate(q.TransDateFrom, "transDateFrom", fields),
		TransDateTo:   parseQueryDate(q.TransDateTo, "transDateTo", fields),

		AcqValueMin:  parseQueryFloat(q.AcqValueMin, "acqValueMin", fields),
		AcqValueMax:  parseQueryFloat(q.AcqValueMax, "acqValueMax", fields),
		BookValueMin: parseQueryFloat(q.BookValueMin, "bookValueMin", fields),
		BookValueMax: parseQueryFloat(q.BookValueMax, "bookValueMax", fields),
	}

	if len(fields) > 0 {
		return asset.ListFilter{}, &asset.ValidationError{Fields: fields}
	}
	return f, nil
}
