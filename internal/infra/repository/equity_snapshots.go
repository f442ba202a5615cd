package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"journal_server/internal/domain"
)

type GormEquitySnapshotRepository struct {
	db *gorm.DB
}

func NewGormEquitySnapshotRepository(db *gorm.DB) (*GormEquitySnapshotRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormEquitySnapshotRepository{db: db}, nil
}

func (r *GormEquitySnapshotRepository) InsertSnapshot(ctx context.Context, snapshot domain.EquitySnapshot) error {
	model := toEquitySnapshotModel(snapshot)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormEquitySnapshotRepository) ListSnapshots(ctx context.Context, accountNumber string, limit int) ([]domain.EquitySnapshot, error) {
	var models []EquitySnapshotModel
	query := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	snapshots := make([]domain.EquitySnapshot, len(models))
	for i, model := range models {
		snapshots[i] = model.toDomain()
	}

	return snapshots, nil
}
