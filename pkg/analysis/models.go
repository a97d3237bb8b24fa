package analysis

import (
	"time"

	"github.com/az3l1t/analysis-platform/pkg/common/models"
	"gorm.io/datatypes"
)

// AnalysisResult is the domain entity: one patient's lab result set. The id
// is assigned by the store on first save and never changes; analysisTime is
// set once at creation.
type AnalysisResult struct {
	ID           string            `json:"id"`
	PatientID    int64             `json:"patientId"`
	DoctorID     int64             `json:"doctorId"`
	AnalysisTime models.LocalTime  `json:"analysisTime"`
	IsConfirmed  bool              `json:"isConfirmed"`
	Results      map[string]string `json:"results"`
}

type resultDocument struct {
	ID           string            `gorm:"primaryKey;column:id"`
	PatientID    int64             `gorm:"column:patient_id"`
	DoctorID     int64             `gorm:"column:doctor_id"`
	AnalysisTime time.Time         `gorm:"column:analysis_time"`
	IsConfirmed  bool              `gorm:"column:is_confirmed"`
	Results      datatypes.JSONMap `gorm:"column:results"`
}

func (resultDocument) TableName() string {
	return "analysis_results"
}

func toDocument(result *AnalysisResult) resultDocument {
	payload := datatypes.JSONMap{}
	for key, value := range result.Results {
		payload[key] = value
	}
	return resultDocument{
		ID:           result.ID,
		PatientID:    result.PatientID,
		DoctorID:     result.DoctorID,
		AnalysisTime: result.AnalysisTime.Time,
		IsConfirmed:  result.IsConfirmed,
		Results:      payload,
	}
}

func toDomain(doc *resultDocument) *AnalysisResult {
	results := make(map[string]string, len(doc.Results))
	for key, value := range doc.Results {
		if s, ok := value.(string); ok {
			results[key] = s
		}
	}
	return &AnalysisResult{
		ID:           doc.ID,
		PatientID:    doc.PatientID,
		DoctorID:     doc.DoctorID,
		AnalysisTime: models.NewLocalTime(doc.AnalysisTime),
		IsConfirmed:  doc.IsConfirmed,
		Results:      results,
	}
}

// CreateInResult is the creation request body. patientId and doctorId are
// required; isConfirmed defaults to false.
type CreateInResult struct {
	PatientID   *int64            `json:"patientId"`
	DoctorID    *int64            `json:"doctorId"`
	IsConfirmed *bool             `json:"isConfirmed,omitempty"`
	Results     map[string]string `json:"results"`
}

func (d CreateInResult) ToDomain() *AnalysisResult {
	result := &AnalysisResult{
		Results: map[string]string{},
	}
	if d.PatientID != nil {
		result.PatientID = *d.PatientID
	}
	if d.DoctorID != nil {
		result.DoctorID = *d.DoctorID
	}
	if d.IsConfirmed != nil {
		result.IsConfirmed = *d.IsConfirmed
	}
	for key, value := range d.Results {
		result.Results[key] = value
	}
	return result
}

// UpdateInResult is the partial-update request body. Only id is required;
// nil fields leave the stored value untouched.
type UpdateInResult struct {
	ID          string            `json:"id"`
	PatientID   *int64            `json:"patientId,omitempty"`
	DoctorID    *int64            `json:"doctorId,omitempty"`
	IsConfirmed *bool             `json:"isConfirmed,omitempty"`
	Results     map[string]string `json:"results,omitempty"`
}

// MergeUpdate overwrites each field present in the dto. The results map, when
// present, replaces the stored map wholesale rather than merging per key.
func MergeUpdate(dto UpdateInResult, result *AnalysisResult) {
	if dto.PatientID != nil {
		result.PatientID = *dto.PatientID
	}
	if dto.DoctorID != nil {
		result.DoctorID = *dto.DoctorID
	}
	if dto.IsConfirmed != nil {
		result.IsConfirmed = *dto.IsConfirmed
	}
	if dto.Results != nil {
		replacement := make(map[string]string, len(dto.Results))
		for key, value := range dto.Results {
			replacement[key] = value
		}
		result.Results = replacement
	}
}

type GetOutResult struct {
	ID          string            `json:"id"`
	PatientID   int64             `json:"patientId"`
	DoctorID    int64             `json:"doctorId"`
	IsConfirmed bool              `json:"isConfirmed"`
	Results     map[string]string `json:"results"`
}

type UpdateOutResult struct {
	ID          string            `json:"id"`
	PatientID   int64             `json:"patientId"`
	DoctorID    int64             `json:"doctorId"`
	IsConfirmed bool              `json:"isConfirmed"`
	Results     map[string]string `json:"results"`
}

func GetOutFrom(result *AnalysisResult) GetOutResult {
	return GetOutResult{
		ID:          result.ID,
		PatientID:   result.PatientID,
		DoctorID:    result.DoctorID,
		IsConfirmed: result.IsConfirmed,
		Results:     nonNil(result.Results),
	}
}

func UpdateOutFrom(result *AnalysisResult) UpdateOutResult {
	return UpdateOutResult{
		ID:          result.ID,
		PatientID:   result.PatientID,
		DoctorID:    result.DoctorID,
		IsConfirmed: result.IsConfirmed,
		Results:     nonNil(result.Results),
	}
}

func nonNil(results map[string]string) map[string]string {
	if results == nil {
		return map[string]string{}
	}
	return results
}

// Page mirrors the stored pagination contract: zero-based page number plus
// totals computed from the overall element count.
type Page struct {
	Content       []AnalysisResult `json:"content"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
	Number        int              `json:"number"`
	Size          int              `json:"size"`
	First         bool             `json:"first"`
	Last          bool             `json:"last"`
}

func NewPage(content []AnalysisResult, totalElements int64, number, size int) Page {
	if content == nil {
		content = []AnalysisResult{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((totalElements + int64(size) - 1) / int64(size))
	}
	return Page{
		Content:       content,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		Number:        number,
		Size:          size,
		First:         number == 0,
		Last:          number >= totalPages-1,
	}
}
