package assetaudit

import (
	"errors"
	"testing"
	"time"

	"go_assetdb/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	models := []interface{}{
		&model.User{},
		&model.Asset{},
		&model.LocationDesc{},
		&model.AssetAudit{},
		&model.AuditUser{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedAuditor(t *testing.T, db *gorm.DB) *model.User {
	user := model.User{
		Username:     "auditor1",
		PasswordHash: "x",
		Name:         "First Auditor",
		Email:        "auditor1@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func seedAuditAsset(t *testing.T, db *gorm.DB, assetNo string) *model.Asset {
	row := model.Asset{
		ID:           uuid.NewString(),
		Version:      1,
		IsLatest:     true,
		AssetNo:      assetNo,
		LineNo:       "10",
		AssetName:    "Asset " + assetNo,
		Condition:    model.AssetConditionGood,
		PISDate:      time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		TransDate:    time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
		CategoryCode: "MACH",
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed asset: %v", err)
	}
	return &row
}

func TestCreateAndGet(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := NewService(db)
	auditor := seedAuditor(t, db)
	asset := seedAuditAsset(t, db, "AST-001")

	remarks := "found in warehouse 2"
	created, err := svc.Create(Params{
		AssetID:     asset.ID,
		CheckedByID: auditor.ID,
		Status:      "Good",
		Remarks:     &remarks,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if created.CheckDate.IsZero() {
		t.Error("Expected check date to default to now")
	}
	if len(created.AuditUsers) != 1 || created.AuditUsers[0].UserID != auditor.ID {
		t.Fatalf("Expected one auditor link, got %+v", created.AuditUsers)
	}
	if created.AuditUsers[0].User == nil || created.AuditUsers[0].User.Name != "First Auditor" {
		t.Error("Expected auditor user preloaded")
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Remarks == nil || *got.Remarks != remarks {
		t.Errorf("Expected remarks %q, got %v", remarks, got.Remarks)
	}
	if got.Asset == nil || got.Asset.AssetNo != "AST-001" {
		t.Error("Expected asset preloaded")
	}
}

func TestCreate_UnknownAsset(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := NewService(db)
	auditor := seedAuditor(t, db)

	_, err := svc.Create(Params{
		AssetID:     "no-such-asset",
		CheckedByID: auditor.ID,
		Status:      "Good",
	})
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound, got %v", err)
	}
}

func TestGet_Unknown(t *testing.T) {
	svc := NewService(setupAuditTestDB(t))

	_, err := svc.Get("no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := NewService(db)
	auditor := seedAuditor(t, db)
	a1 := seedAuditAsset(t, db, "AST-001")
	a2 := seedAuditAsset(t, db, "AST-002")

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mustCreate := func(assetID, status string, when time.Time) {
		if _, err := svc.Create(Params{
			AssetID: assetID, CheckedByID: auditor.ID, Status: status, CheckDate: &when,
		}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}
	mustCreate(a1.ID, "Good", older)
	mustCreate(a1.ID, "Broken", newer)
	mustCreate(a2.ID, "Good", newer)

	all, err := svc.List("", "")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 audits, got %d", len(all))
	}
	if !all[0].CheckDate.After(all[2].CheckDate) {
		t.Error("Expected newest check first")
	}

	byAsset, err := svc.List(a1.ID, "")
	if err != nil {
		t.Fatalf("List(assetId) failed: %v", err)
	}
	if len(byAsset) != 2 {
		t.Errorf("Expected 2 audits for asset, got %d", len(byAsset))
	}

	byBoth, err := svc.List(a1.ID, "Broken")
	if err != nil {
		t.Fatalf("List(assetId, status) failed: %v", err)
	}
	if len(byBoth) != 1 || byBoth[0].Status != "Broken" {
		t.Errorf("Expected one Broken audit, got %+v", byBoth)
	}
}

func TestUpdate_ReplacesAuditorLink(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := NewService(db)
	auditor := seedAuditor(t, db)
	second := model.User{Username: "auditor2", PasswordHash: "x", Name: "Second Auditor", Email: "auditor2@example.com"}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	asset := seedAuditAsset(t, db, "AST-001")

	created, err := svc.Create(Params{AssetID: asset.ID, CheckedByID: auditor.ID, Status: "Pending"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	updated, err := svc.Update(created.ID, Params{
		AssetID:     asset.ID,
		CheckedByID: second.ID,
		Status:      "Good",
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Status != "Good" {
		t.Errorf("Expected status Good, got %s", updated.Status)
	}
	if len(updated.AuditUsers) != 1 || updated.AuditUsers[0].UserID != second.ID {
		t.Fatalf("Expected auditor link replaced, got %+v", updated.AuditUsers)
	}

	var linkCount int64
	db.Model(&model.AuditUser{}).Where("audit_id = ?", created.ID).Count(&linkCount)
	if linkCount != 1 {
		t.Errorf("Expected 1 auditor link after update, got %d", linkCount)
	}
}

func TestUpdate_Unknown(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := NewService(db)
	auditor := seedAuditor(t, db)
	asset := seedAuditAsset(t, db, "AST-001")

	_, err := svc.Update("no-such-id", Params{AssetID: asset.ID, CheckedByID: auditor.ID, Status: "Good"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDelete_RemovesLinks(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := NewService(db)
	auditor := seedAuditor(t, db)
	asset := seedAuditAsset(t, db, "AST-001")

	created, err := svc.Create(Params{AssetID: asset.ID, CheckedByID: auditor.ID, Status: "Good"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	var linkCount int64
	db.Model(&model.AuditUser{}).Where("audit_id = ?", created.ID).Count(&linkCount)
	if linkCount != 0 {
		t.Errorf("Expected auditor links deleted, got %d", linkCount)
	}

	if err := svc.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}
