package asset

import (
	"testing"
	"time"
)

func TestMergeAttributes_EmptyPatchKeepsEverything(t *testing.T) {
	old := testAttributes("AST-001")
	old.Remark = strPtr("installed 2020")

	merged := Merge(old, Patch{})

	if merged.AssetNo != old.AssetNo {
		t.Errorf("Expected assetNo %s, got %s", old.AssetNo, merged.AssetNo)
	}
	if merged.AssetName != old.AssetName {
		t.Errorf("Expected assetName %s, got %s", old.AssetName, merged.AssetName)
	}
	if merged.Remark == nil || *merged.Remark != *old.Remark {
		t.Errorf("Expected remark carried over, got %v", merged.Remark)
	}
	if !merged.PISDate.Equal(old.PISDate) {
		t.Errorf("Expected pisDate %v, got %v", old.PISDate, merged.PISDate)
	}
	if merged.BookValue != old.BookValue {
		t.Errorf("Expected bookValue %f, got %f", old.BookValue, merged.BookValue)
	}
}

func TestMergeAttributes_OverridesOnlyPatchedFields(t *testing.T) {
	old := testAttributes("AST-001")

	newValue := 5000.0
	newDate := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	locID := 7

	merged := Merge(old, Patch{
		Condition:      strPtr("Broken"),
		BookValue:      &newValue,
		TransDate:      &newDate,
		LocationDescID: &locID,
	})

	if merged.Condition != "Broken" {
		t.Errorf("Expected condition Broken, got %s", merged.Condition)
	}
	if merged.BookValue != newValue {
		t.Errorf("Expected bookValue %f, got %f", newValue, merged.BookValue)
	}
	if !merged.TransDate.Equal(newDate) {
		t.Errorf("Expected transDate %v, got %v", newDate, merged.TransDate)
	}
	if merged.LocationDescID == nil || *merged.LocationDescID != locID {
		t.Errorf("Expected locationDescId %d, got %v", locID, merged.LocationDescID)
	}

	// Everything else stays
	if merged.AssetName != old.AssetName {
		t.Errorf("Expected assetName unchanged, got %s", merged.AssetName)
	}
	if merged.AcqValueIDR != old.AcqValueIDR {
		t.Errorf("Expected acqValueIdr unchanged, got %f", merged.AcqValueIDR)
	}
	if !merged.PISDate.Equal(old.PISDate) {
		t.Errorf("Expected pisDate unchanged, got %v", merged.PISDate)
	}
}

func TestMergeAttributes_DoesNotMutateOld(t *testing.T) {
	old := testAttributes("AST-001")

	Merge(old, Patch{AssetName: strPtr("Renamed")})

	if old.AssetName != "Pump A" {
		t.Errorf("Expected old untouched, got %s", old.AssetName)
	}
}

func TestValidationError_Message(t *testing.T) {
	verr := newValidationError()
	verr.Fields["assetNo"] = "required"
	verr.Fields["acqValueIdr"] = "not a finite number"

	want := "invalid asset attributes: acqValueIdr: not a finite number; assetNo: required"
	if got := verr.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
