package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/az3l1t/analysis-platform/pkg/analysis"
	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/az3l1t/analysis-platform/pkg/common/models"
)

// ResultSource loads analysis results for serialization onto the results
// queue. The analysis repository implements it.
type ResultSource interface {
	FindByID(ctx context.Context, id string) (*analysis.AnalysisResult, error)
}

// Service publishes result snapshots and notifications. It also implements
// analysis.Notifier for the update/confirm emission paths.
type Service struct {
	source    ResultSource
	publisher *Publisher
	templates Templates
	nowFunc   func() time.Time
}

func NewService(source ResultSource, publisher *Publisher, templates Templates) *Service {
	return &Service{
		source:    source,
		publisher: publisher,
		templates: templates,
		nowFunc:   time.Now,
	}
}

// SendMessage loads the entity and publishes its snapshot to the results
// queue. A missing id surfaces as analysis.ErrNotFound; the publish itself is
// fire-and-forget.
func (s *Service) SendMessage(ctx context.Context, id string) error {
	result, err := s.source.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.publisher.PublishResults(ctx, ToSendResults(result))
	logger.Log.WithField("id", id).Info("Results message published")
	return nil
}

// SendNotification forwards an externally constructed notification as-is.
func (s *Service) SendNotification(ctx context.Context, notification models.Notification) {
	s.publisher.PublishNotification(ctx, notification)
	logger.Log.WithFields(map[string]interface{}{
		"id":   notification.AnalysisResultID,
		"type": notification.NotificationType,
	}).Info("Notification sent")
}

func (s *Service) NotifyResultUpdated(ctx context.Context, result *analysis.AnalysisResult) {
	s.SendNotification(ctx, s.buildNotification(
		result,
		models.ResultUpdated,
		s.templates.UpdatedTitle,
		s.templates.UpdatedMessage,
	))
}

func (s *Service) NotifyResultConfirmed(ctx context.Context, result *analysis.AnalysisResult) {
	s.SendNotification(ctx, s.buildNotification(
		result,
		models.ResultConfirmed,
		s.templates.ConfirmedTitle,
		s.templates.ConfirmedMessage,
	))
}

func (s *Service) buildNotification(result *analysis.AnalysisResult, notificationType models.NotificationType, title, messageFormat string) models.Notification {
	confirmed := result.IsConfirmed
	return models.Notification{
		AnalysisResultID: result.ID,
		PatientID:        result.PatientID,
		DoctorID:         result.DoctorID,
		NotificationType: notificationType,
		Title:            title,
		Message:          fmt.Sprintf(messageFormat, result.ID),
		IsConfirmed:      &confirmed,
		NotificationTime: models.NewLocalTime(s.nowFunc()),
		AnalysisTime:     result.AnalysisTime,
	}
}

// ToSendResults flattens the entity into its wire snapshot.
func ToSendResults(result *analysis.AnalysisResult) models.SendResults {
	results := result.Results
	if results == nil {
		results = map[string]string{}
	}
	return models.SendResults{
		ID:           result.ID,
		PatientID:    result.PatientID,
		DoctorID:     result.DoctorID,
		IsConfirmed:  result.IsConfirmed,
		AnalysisTime: result.AnalysisTime,
		Results:      results,
	}
}
