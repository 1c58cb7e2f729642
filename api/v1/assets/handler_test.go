package assets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_assetdb/internal/httpx"
	"go_assetdb/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	models := []interface{}{
		&model.Asset{},
		&model.ProjectCode{},
		&model.LocationDesc{},
		&model.DetailsLocation{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	h := NewHandler(db)
	h.publish = func(eventType string, payload interface{}) error { return nil }

	r := gin.New()
	r.GET("/assets", h.List)
	r.POST("/assets", h.Create)
	r.GET("/assets/versions/:assetNo", h.ListVersions)
	r.GET("/assets/:id", h.Get)
	r.PUT("/assets/:id", h.Update)
	r.DELETE("/assets/:id", h.Delete)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) httpx.Response {
	var resp httpx.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func validAssetBody() map[string]interface{} {
	return map[string]interface{}{
		"assetNo":      "AST-001",
		"lineNo":       "10",
		"assetName":    "Forklift",
		"condition":    "Good",
		"pisDate":      "2021-01-01",
		"transDate":    "2021-02-01",
		"categoryCode": "MACH",
		"acqValue":     "1500.50",
		"bookValue":    1200,
	}
}

func createAsset(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, http.MethodPost, "/assets", validAssetBody())
	if w.Code != http.StatusOK {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	return data["id"].(string)
}

func TestCreateAsset(t *testing.T) {
	r, db := setupHandlerTest(t)

	id := createAsset(t, r)

	var row model.Asset
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		t.Fatalf("created row not found: %v", err)
	}
	if row.Version != 1 || !row.IsLatest {
		t.Errorf("Expected version 1 latest, got version=%d isLatest=%v", row.Version, row.IsLatest)
	}
	// String-typed number must be parsed
	if row.AcqValue != 1500.50 {
		t.Errorf("Expected acqValue 1500.50, got %f", row.AcqValue)
	}
}

func TestCreateAsset_BadNumber(t *testing.T) {
	r, _ := setupHandlerTest(t)

	body := validAssetBody()
	body["acqValue"] = "not-a-number"
	w := doJSON(t, r, http.MethodPost, "/assets", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if resp.Code != httpx.CodeValidation {
		t.Errorf("Expected code %d, got %d", httpx.CodeValidation, resp.Code)
	}
	fields := resp.Data.(map[string]interface{})
	if _, ok := fields["acqValue"]; !ok {
		t.Errorf("Expected acqValue in error fields, got %v", fields)
	}
}

func TestCreateAsset_MissingRequired(t *testing.T) {
	r, _ := setupHandlerTest(t)

	w := doJSON(t, r, http.MethodPost, "/assets", map[string]interface{}{
		"assetNo": "AST-001",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != httpx.CodeValidation {
		t.Errorf("Expected code %d, got %d", httpx.CodeValidation, resp.Code)
	}
}

func TestUpdateAsset_NewVersion(t *testing.T) {
	r, db := setupHandlerTest(t)
	id := createAsset(t, r)

	w := doJSON(t, r, http.MethodPut, "/assets/"+id, map[string]interface{}{
		"assetName": "Forklift (refurbished)",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", w.Code, w.Body.String())
	}

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	if data["version"].(float64) != 2 {
		t.Errorf("Expected version 2, got %v", data["version"])
	}
	if data["parentId"].(string) != id {
		t.Errorf("Expected parentId %s, got %v", id, data["parentId"])
	}
	// Unpatched fields carry over
	if data["assetNo"].(string) != "AST-001" {
		t.Errorf("Expected assetNo carried over, got %v", data["assetNo"])
	}

	var latestCount int64
	db.Model(&model.Asset{}).Where("is_latest = ? AND deleted_at IS NULL", true).Count(&latestCount)
	if latestCount != 1 {
		t.Errorf("Expected exactly one latest row, got %d", latestCount)
	}
}

func TestUpdateAsset_StaleRowConflicts(t *testing.T) {
	r, _ := setupHandlerTest(t)
	id := createAsset(t, r)

	// First update supersedes the original row
	if w := doJSON(t, r, http.MethodPut, "/assets/"+id, map[string]interface{}{"lineNo": "20"}); w.Code != http.StatusOK {
		t.Fatalf("first update returned %d", w.Code)
	}

	// Updating through the superseded row must conflict
	w := doJSON(t, r, http.MethodPut, "/assets/"+id, map[string]interface{}{"lineNo": "30"})
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if resp.Code != httpx.CodeConflict {
		t.Errorf("Expected code %d, got %d", httpx.CodeConflict, resp.Code)
	}
}

func TestGetAsset_NotFound(t *testing.T) {
	r, _ := setupHandlerTest(t)

	w := doJSON(t, r, http.MethodGet, "/assets/no-such-id", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestDeleteAsset(t *testing.T) {
	r, _ := setupHandlerTest(t)
	id := createAsset(t, r)

	if w := doJSON(t, r, http.MethodDelete, "/assets/"+id, nil); w.Code != http.StatusOK {
		t.Fatalf("delete returned %d", w.Code)
	}

	// Gone from reads
	if w := doJSON(t, r, http.MethodGet, "/assets/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}

	// Second delete conflicts
	if w := doJSON(t, r, http.MethodDelete, "/assets/"+id, nil); w.Code != http.StatusConflict {
		t.Errorf("Expected 409 on second delete, got %d", w.Code)
	}
}

func TestListVersions(t *testing.T) {
	r, _ := setupHandlerTest(t)
	id := createAsset(t, r)

	w := doJSON(t, r, http.MethodPut, "/assets/"+id, map[string]interface{}{"lineNo": "20"})
	if w.Code != http.StatusOK {
		t.Fatalf("update returned %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/assets/versions/AST-001", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("versions returned %d: %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	versions := resp.Data.([]interface{})
	if len(versions) != 2 {
		t.Fatalf("Expected 2 versions, got %d", len(versions))
	}
	first := versions[0].(map[string]interface{})
	if first["version"].(float64) != 2 {
		t.Errorf("Expected newest first, got version %v", first["version"])
	}
}

func TestListAssets(t *testing.T) {
	r, _ := setupHandlerTest(t)
	createAsset(t, r)

	body := validAssetBody()
	body["assetNo"] = "AST-002"
	body["assetName"] = "Generator"
	if w := doJSON(t, r, http.MethodPost, "/assets", body); w.Code != http.StatusOK {
		t.Fatalf("create returned %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/assets?search=Generator", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d", w.Code)
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	if data["total"].(float64) != 1 {
		t.Errorf("Expected 1 match, got %v", data["total"])
	}
}
