package ws

import (
	"testing"

	"go_assetdb/internal/db"
	"go_assetdb/internal/model"
)

func setupWSTestDB(t *testing.T) {
	if err := db.Init("sqlite", ":memory:"); err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.GetDB().AutoMigrate(&model.WSEvent{}, &model.Asset{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
}

func publishN(t *testing.T, n int) []int64 {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		if err := PublishAssetEvent(model.WSEventTypeUpdate, map[string]string{"id": "a"}); err != nil {
			t.Fatalf("PublishAssetEvent() failed: %v", err)
		}
		latest, err := GetLatestEventID()
		if err != nil {
			t.Fatalf("GetLatestEventID() failed: %v", err)
		}
		ids = append(ids, latest)
	}
	return ids
}

func TestPublishAssetEvent_PersistsEvents(t *testing.T) {
	setupWSTestDB(t)

	if latest, err := GetLatestEventID(); err != nil || latest != 0 {
		t.Fatalf("Expected no events yet, got id=%d err=%v", latest, err)
	}

	ids := publishN(t, 3)

	events, err := GetIncrementalEvents(0, 10)
	if err != nil {
		t.Fatalf("GetIncrementalEvents() failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].ID >= events[2].ID {
		t.Error("Expected events ordered oldest first")
	}
	if events[2].ID != ids[2] {
		t.Errorf("Expected newest event id %d, got %d", ids[2], events[2].ID)
	}
}

func TestPlanReplay_NoLastEventID(t *testing.T) {
	setupWSTestDB(t)

	plan, err := planReplay(0, 10)
	if err != nil {
		t.Fatalf("planReplay() failed: %v", err)
	}
	if !plan.full {
		t.Error("Expected full resend for a fresh client")
	}
}

func TestPlanReplay_Incremental(t *testing.T) {
	setupWSTestDB(t)
	ids := publishN(t, 3)

	plan, err := planReplay(ids[0], 10)
	if err != nil {
		t.Fatalf("planReplay() failed: %v", err)
	}
	if plan.full || plan.upToDate {
		t.Fatalf("Expected incremental replay, got %+v", plan)
	}
	if len(plan.events) != 2 {
		t.Fatalf("Expected 2 events after id %d, got %d", ids[0], len(plan.events))
	}
	if plan.lastEventID != ids[2] {
		t.Errorf("Expected lastEventID %d, got %d", ids[2], plan.lastEventID)
	}
}

func TestPlanReplay_UpToDateClientGetsNoList(t *testing.T) {
	setupWSTestDB(t)
	ids := publishN(t, 2)

	plan, err := planReplay(ids[1], 10)
	if err != nil {
		t.Fatalf("planReplay() failed: %v", err)
	}
	if !plan.upToDate {
		t.Fatalf("Expected up-to-date confirmation, got %+v", plan)
	}
	// The client must not receive a list it could mistake for empty
	if plan.full || len(plan.events) != 0 {
		t.Errorf("Expected no events and no full resend, got %+v", plan)
	}
	if plan.lastEventID != ids[1] {
		t.Errorf("Expected current event id %d, got %d", ids[1], plan.lastEventID)
	}
}

func TestPlanReplay_LargeGapFallsBackToFull(t *testing.T) {
	setupWSTestDB(t)
	ids := publishN(t, 5)

	plan, err := planReplay(ids[0], 3)
	if err != nil {
		t.Fatalf("planReplay() failed: %v", err)
	}
	if !plan.full {
		t.Errorf("Expected full resend when gap exceeds replay limit, got %+v", plan)
	}
}
