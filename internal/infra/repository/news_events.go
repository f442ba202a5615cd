package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journal_server/internal/domain"
)

type GormNewsEventRepository struct {
	db *gorm.DB
}

func NewGormNewsEventRepository(db *gorm.DB) (*GormNewsEventRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}

	return &GormNewsEventRepository{db: db}, nil
}

func (r *GormNewsEventRepository) UpsertEvents(ctx context.Context, events []domain.NewsEvent) error {
	if len(events) == 0 {
		return nil
	}

	models := make([]NewsEventModel, len(events))
	for i, ev := range events {
		models[i] = toNewsEventModel(ev)
	}

	assignments := clause.Assignments(map[string]interface{}{
		"event_date": gorm.Expr("EXCLUDED.event_date"),
		"currency":   gorm.Expr("EXCLUDED.currency"),
		"impact":     gorm.Expr("EXCLUDED.impact"),
		"title":      gorm.Expr("EXCLUDED.title"),
		"actual":     gorm.Expr("EXCLUDED.actual"),
		"forecast":   gorm.Expr("EXCLUDED.forecast"),
		"previous":   gorm.Expr("EXCLUDED.previous"),
		"source_url": gorm.Expr("EXCLUDED.source_url"),
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	})

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_hash"}},
			DoUpdates: assignments,
		}).
		Create(&models).Error
}

func (r *GormNewsEventRepository) ListEvents(ctx context.Context, opts domain.ListEventsOptions) ([]domain.NewsEvent, error) {
	query := r.db.WithContext(ctx).Model(&NewsEventModel{}).Order("event_date DESC")
	if opts.From != nil {
		query = query.Where("event_date >= ?", *opts.From)
	}
	if opts.To != nil {
		query = query.Where("event_date <= ?", *opts.To)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var models []NewsEventModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]domain.NewsEvent, len(models))
	for i, model := range models {
		events[i] = model.toDomain()
	}

	return events, nil
}
