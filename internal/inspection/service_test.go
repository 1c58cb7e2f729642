package inspection

import (
	"errors"
	"testing"
	"time"

	"go_assetdb/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInspectionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	models := []interface{}{
		&model.User{},
		&model.Asset{},
		&model.Inspection{},
		&model.InspectionItem{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedInspector(t *testing.T, db *gorm.DB) *model.User {
	user := model.User{
		Username:     "inspector1",
		PasswordHash: "x",
		Name:         "First Inspector",
		Email:        "inspector1@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func seedAssetRow(t *testing.T, db *gorm.DB, assetNo string, version int) *model.Asset {
	row := model.Asset{
		ID:           uuid.NewString(),
		Version:      version,
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
	db := setupInspectionTestDB(t)
	svc := NewService(db)
	inspector := seedInspector(t, db)

	notes := "quarterly round"
	created, err := svc.Create(inspector.ID, nil, &notes)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected non-empty id")
	}
	if created.Date.IsZero() {
		t.Error("Expected date to default to now")
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Notes == nil || *got.Notes != notes {
		t.Errorf("Expected notes %q, got %v", notes, got.Notes)
	}
}

func TestGet_Unknown(t *testing.T) {
	svc := NewService(setupInspectionTestDB(t))

	_, err := svc.Get("no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAddItem(t *testing.T) {
	db := setupInspectionTestDB(t)
	svc := NewService(db)
	inspector := seedInspector(t, db)
	asset := seedAssetRow(t, db, "AST-001", 3)

	inspection, err := svc.Create(inspector.ID, nil, nil)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	item, err := svc.AddItem(inspection.ID, asset.ID, asset.Version)
	if err != nil {
		t.Fatalf("AddItem() failed: %v", err)
	}
	if item.AssetVersion != 3 {
		t.Errorf("Expected pinned version 3, got %d", item.AssetVersion)
	}

	// Unknown inspection / asset
	if _, err := svc.AddItem("no-such-id", asset.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := svc.AddItem(inspection.ID, "no-such-asset", 1); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	db := setupInspectionTestDB(t)
	svc := NewService(db)
	inspector := seedInspector(t, db)
	asset := seedAssetRow(t, db, "AST-001", 1)

	inspection, _ := svc.Create(inspector.ID, nil, nil)
	item, err := svc.AddItem(inspection.ID, asset.ID, 1)
	if err != nil {
		t.Fatalf("AddItem() failed: %v", err)
	}

	if err := svc.RemoveItem(item.ID); err != nil {
		t.Fatalf("RemoveItem() failed: %v", err)
	}
	if err := svc.RemoveItem(item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound on second remove, got %v", err)
	}
}

func TestDelete_RemovesItems(t *testing.T) {
	db := setupInspectionTestDB(t)
	svc := NewService(db)
	inspector := seedInspector(t, db)
	asset := seedAssetRow(t, db, "AST-001", 1)

	inspection, _ := svc.Create(inspector.ID, nil, nil)
	if _, err := svc.AddItem(inspection.ID, asset.ID, 1); err != nil {
		t.Fatalf("AddItem() failed: %v", err)
	}

	if err := svc.Delete(inspection.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	var itemCount int64
	db.Model(&model.InspectionItem{}).Where("inspection_id = ?", inspection.ID).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("Expected items deleted with inspection, got %d", itemCount)
	}

	if err := svc.Delete(inspection.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	db := setupInspectionTestDB(t)
	svc := NewService(db)
	inspector := seedInspector(t, db)

	inspection, _ := svc.Create(inspector.ID, nil, nil)

	newDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	notes := "rescheduled"
	if _, err := svc.Update(inspection.ID, &newDate, &notes); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	got, err := svc.Get(inspection.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !got.Date.Equal(newDate) {
		t.Errorf("Expected date %v, got %v", newDate, got.Date)
	}
	if got.Notes == nil || *got.Notes != notes {
		t.Errorf("Expected notes %q, got %v", notes, got.Notes)
	}
}
