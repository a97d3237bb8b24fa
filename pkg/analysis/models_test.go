package analysis

import "testing"

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestMergeUpdateOverwritesOnlyPresentFields(t *testing.T) {
	result := &AnalysisResult{
		ID:          "id-1",
		PatientID:   100,
		DoctorID:    200,
		IsConfirmed: true,
		Results:     map[string]string{"hb": "12.0", "wbc": "6.8"},
	}

	MergeUpdate(UpdateInResult{
		ID:        "id-1",
		PatientID: int64Ptr(111),
	}, result)

	if result.PatientID != 111 {
		t.Fatalf("expected patientId overwritten, got %d", result.PatientID)
	}
	if result.DoctorID != 200 {
		t.Fatalf("expected doctorId untouched, got %d", result.DoctorID)
	}
	if !result.IsConfirmed {
		t.Fatal("expected isConfirmed untouched")
	}
	if len(result.Results) != 2 || result.Results["hb"] != "12.0" {
		t.Fatalf("expected results untouched, got %v", result.Results)
	}
}

func TestMergeUpdateReplacesResultsWholesale(t *testing.T) {
	result := &AnalysisResult{
		ID:      "id-1",
		Results: map[string]string{"hb": "12.0", "wbc": "6.8"},
	}

	MergeUpdate(UpdateInResult{
		ID:      "id-1",
		Results: map[string]string{"hb": "13.5", "rbc": "4.8"},
	}, result)

	if len(result.Results) != 2 {
		t.Fatalf("expected wholesale replacement, got %v", result.Results)
	}
	if result.Results["hb"] != "13.5" || result.Results["rbc"] != "4.8" {
		t.Fatalf("unexpected results: %v", result.Results)
	}
	if _, stale := result.Results["wbc"]; stale {
		t.Fatal("expected old keys dropped, results is a replacement not a merge")
	}
}

func TestMergeUpdateAllowsExplicitConfirmedRevert(t *testing.T) {
	result := &AnalysisResult{ID: "id-1", IsConfirmed: true}

	MergeUpdate(UpdateInResult{ID: "id-1", IsConfirmed: boolPtr(false)}, result)

	if result.IsConfirmed {
		t.Fatal("explicit isConfirmed=false in the dto overwrites the flag")
	}
}

func TestNewPageMath(t *testing.T) {
	page := NewPage(make([]AnalysisResult, 10), 25, 1, 10)
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if page.First || page.Last {
		t.Fatalf("middle page flagged first=%v last=%v", page.First, page.Last)
	}

	last := NewPage(make([]AnalysisResult, 5), 25, 2, 10)
	if !last.Last || last.First {
		t.Fatalf("last page flagged first=%v last=%v", last.First, last.Last)
	}
}

func TestNewPageEmptyStore(t *testing.T) {
	page := NewPage(nil, 0, 0, 10)
	if page.TotalElements != 0 || page.TotalPages != 0 {
		t.Fatalf("unexpected totals: %+v", page)
	}
	if !page.First || !page.Last {
		t.Fatalf("empty page should be both first and last: %+v", page)
	}
	if page.Content == nil {
		t.Fatal("content must serialize as an empty array, not null")
	}
}

func TestCreateDtoDefaults(t *testing.T) {
	result := CreateInResult{
		PatientID: int64Ptr(100),
		DoctorID:  int64Ptr(200),
	}.ToDomain()

	if result.IsConfirmed {
		t.Fatal("isConfirmed must default to false")
	}
	if result.Results == nil {
		t.Fatal("results must always be a present map")
	}
}
