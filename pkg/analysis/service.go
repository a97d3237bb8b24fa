package analysis

import (
	"context"
	"fmt"

	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/az3l1t/analysis-platform/pkg/common/models"
)

// ResultStore is the persistence port for analysis results.
type ResultStore interface {
	Save(ctx context.Context, result *AnalysisResult) (*AnalysisResult, error)
	FindByID(ctx context.Context, id string) (*AnalysisResult, error)
	FindByIDOptional(ctx context.Context, id string) (*AnalysisResult, error)
	FindAll(ctx context.Context, page, size int) (Page, error)
	DeleteByID(ctx context.Context, id string) error
	WithTransaction(ctx context.Context, fn func(store ResultStore) error) error
}

// Notifier emits advisory notifications. Implementations are fire-and-forget:
// a messaging failure is logged downstream and never reaches the caller, so a
// committed state change can not be undone by a broker outage.
type Notifier interface {
	NotifyResultUpdated(ctx context.Context, result *AnalysisResult)
	NotifyResultConfirmed(ctx context.Context, result *AnalysisResult)
}

// ExternalClient reads confirmed results back from the EMIAS-compatible service.
type ExternalClient interface {
	GetResultByID(ctx context.Context, id string) (*models.SendResults, error)
}

// Service orchestrates the lifecycle of analysis results.
type Service struct {
	store    ResultStore
	notifier Notifier
	external ExternalClient
}

func NewService(store ResultStore, notifier Notifier, external ExternalClient) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		external: external,
	}
}

func (s *Service) Create(ctx context.Context, dto CreateInResult) (*AnalysisResult, error) {
	var saved *AnalysisResult
	err := s.store.WithTransaction(ctx, func(tx ResultStore) error {
		var txErr error
		saved, txErr = tx.Save(ctx, dto.ToDomain())
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("creating analysis result: %w", err)
	}

	logger.Log.WithField("id", saved.ID).Info("Created analysis result")
	return saved, nil
}

// Update applies a partial merge: fields present in the dto overwrite the
// stored values, absent fields stay untouched. The notification is emitted
// after the transaction committed.
func (s *Service) Update(ctx context.Context, dto UpdateInResult) (*AnalysisResult, error) {
	var saved *AnalysisResult
	err := s.store.WithTransaction(ctx, func(tx ResultStore) error {
		existing, txErr := tx.FindByID(ctx, dto.ID)
		if txErr != nil {
			return txErr
		}
		MergeUpdate(dto, existing)
		saved, txErr = tx.Save(ctx, existing)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("id", saved.ID).Info("Updated analysis result")
	s.notifier.NotifyResultUpdated(ctx, saved)
	return saved, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*AnalysisResult, error) {
	return s.store.FindByIDOptional(ctx, id)
}

func (s *Service) GetAll(ctx context.Context, page, size int) (Page, error) {
	return s.store.FindAll(ctx, page, size)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	logger.Log.WithField("id", id).Info("Deleting analysis result")
	return s.store.WithTransaction(ctx, func(tx ResultStore) error {
		return tx.DeleteByID(ctx, id)
	})
}

// ConfirmAnalysisResult flips isConfirmed to true. The transition is one-way:
// nothing in this path ever writes false back.
func (s *Service) ConfirmAnalysisResult(ctx context.Context, id string) error {
	var confirmed *AnalysisResult
	err := s.store.WithTransaction(ctx, func(tx ResultStore) error {
		existing, txErr := tx.FindByID(ctx, id)
		if txErr != nil {
			return txErr
		}
		existing.IsConfirmed = true
		confirmed, txErr = tx.Save(ctx, existing)
		return txErr
	})
	if err != nil {
		return err
	}

	logger.Log.WithField("id", confirmed.ID).Info("Confirmed analysis result")
	s.notifier.NotifyResultConfirmed(ctx, confirmed)
	return nil
}

// GetConfirmedResults is a passthrough to the external EMIAS read endpoint.
func (s *Service) GetConfirmedResults(ctx context.Context, id string) (*models.SendResults, error) {
	return s.external.GetResultByID(ctx, id)
}
