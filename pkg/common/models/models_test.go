package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLocalTimeWireFormat(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 999999999, time.UTC)
	data, err := json.Marshal(NewLocalTime(ts))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2024-01-15T10:30:00"` {
		t.Fatalf("unexpected wire format: %s", data)
	}

	var parsed LocalTime
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !parsed.Equal(ts.Truncate(time.Second)) {
		t.Fatalf("round trip changed the timestamp: %v", parsed)
	}
}

func TestSendResultsRoundTrip(t *testing.T) {
	original := SendResults{
		ID:           "external-123",
		PatientID:    100,
		DoctorID:     200,
		IsConfirmed:  true,
		AnalysisTime: NewLocalTime(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)),
		Results:      map[string]string{"hb": "14.5"},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded SendResults
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.ID != original.ID || decoded.PatientID != original.PatientID ||
		decoded.DoctorID != original.DoctorID || decoded.IsConfirmed != original.IsConfirmed {
		t.Fatalf("decoded record differs: %+v", decoded)
	}
	if !decoded.AnalysisTime.Equal(original.AnalysisTime.Time) {
		t.Fatalf("analysisTime differs: %v", decoded.AnalysisTime)
	}
	if decoded.Results["hb"] != "14.5" {
		t.Fatalf("results differ: %v", decoded.Results)
	}
}

func TestNotificationOmitsUnsetConfirmedFlag(t *testing.T) {
	data, err := json.Marshal(Notification{AnalysisResultID: "id-1", NotificationType: ResultUpdated})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var asMap map[string]interface{}
	if err := json.Unmarshal(data, &asMap); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, present := asMap["isConfirmed"]; present {
		t.Fatal("expected isConfirmed to be omitted when unset")
	}
}
