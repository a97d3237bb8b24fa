package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("analysis result not found")

// Repository persists AnalysisResult documents in the analysis_results table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&resultDocument{})
}

// Save persists the entity. An unset id marks a first save: the store assigns
// a fresh id and stamps analysisTime. A set id is an upsert that carries the
// loaded analysisTime through unchanged.
func (r *Repository) Save(ctx context.Context, result *AnalysisResult) (*AnalysisResult, error) {
	doc := toDocument(result)
	if doc.ID == "" {
		doc.ID = uuid.New().String()
		doc.AnalysisTime = time.Now().UTC().Truncate(time.Second)
	}
	if err := r.db.WithContext(ctx).Save(&doc).Error; err != nil {
		return nil, err
	}
	return toDomain(&doc), nil
}

// FindByIDOptional returns nil without error when the id is absent.
func (r *Repository) FindByIDOptional(ctx context.Context, id string) (*AnalysisResult, error) {
	var doc resultDocument
	result := r.db.WithContext(ctx).First(&doc, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return toDomain(&doc), nil
}

// FindByID is the variant callers use when a miss is a caller bug: it fails
// with ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (*AnalysisResult, error) {
	found, err := r.FindByIDOptional(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *Repository) FindAll(ctx context.Context, page, size int) (Page, error) {
	if size < 1 {
		size = 10
	}
	if page < 0 {
		page = 0
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&resultDocument{}).Count(&total).Error; err != nil {
		return Page{}, err
	}

	var docs []resultDocument
	if err := r.db.WithContext(ctx).
		Offset(page * size).
		Limit(size).
		Find(&docs).Error; err != nil {
		return Page{}, err
	}

	content := make([]AnalysisResult, 0, len(docs))
	for i := range docs {
		content = append(content, *toDomain(&docs[i]))
	}
	return NewPage(content, total, page, size), nil
}

// DeleteByID is idempotent; deleting an absent id is not an error.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&resultDocument{}, "id = ?", id).Error
}

// WithTransaction runs fn against a transactional view of the store and
// commits when fn returns nil.
func (r *Repository) WithTransaction(ctx context.Context, fn func(store ResultStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}
