package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire format for all timestamps exchanged between the
// analysis service, the queues and the EMIAS consumer.
const TimeLayout = "2006-01-02T15:04:05"

// LocalTime is a second-precision timestamp serialized as
// "yyyy-MM-ddTHH:mm:ss" without a zone designator.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{t.Truncate(time.Second)}
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", t.Format(TimeLayout))), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// SendResults is the wire snapshot of an analysis result. It is both the
// results-queue payload and the body served by the EMIAS read endpoint.
type SendResults struct {
	ID           string            `json:"id"`
	PatientID    int64             `json:"patientId"`
	DoctorID     int64             `json:"doctorId"`
	IsConfirmed  bool              `json:"isConfirmed"`
	AnalysisTime LocalTime         `json:"analysisTime"`
	Results      map[string]string `json:"results"`
}

type NotificationType string

const (
	ResultAdded     NotificationType = "RESULT_ADDED"
	ResultUpdated   NotificationType = "RESULT_UPDATED"
	ResultConfirmed NotificationType = "RESULT_CONFIRMED"
	ResultViewed    NotificationType = "RESULT_VIEWED"
)

// Notification is the advisory event published to the notifications queue.
// Consumers fan it out to end users; it carries no authoritative state.
type Notification struct {
	AnalysisResultID string           `json:"analysisResultId"`
	PatientID        int64            `json:"patientId"`
	DoctorID         int64            `json:"doctorId"`
	NotificationType NotificationType `json:"notificationType"`
	Title            string           `json:"title"`
	Message          string           `json:"message"`
	IsConfirmed      *bool            `json:"isConfirmed,omitempty"`
	NotificationTime LocalTime        `json:"notificationTime"`
	AnalysisTime     LocalTime        `json:"analysisTime"`
}
