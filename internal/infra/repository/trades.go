package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journal_server/internal/domain"
)

type GormTradeRepository struct {
	db *gorm.DB
}

func NewGormTradeRepository(db *gorm.DB) (*GormTradeRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTradeRepository{db: db}, nil
}

func (r *GormTradeRepository) UpsertTrade(ctx context.Context, trade domain.Trade) error {
	model := toTradeModel(trade)

	assignments := clause.Assignments(map[string]interface{}{
		"symbol":      gorm.Expr("EXCLUDED.symbol"),
		"side":        gorm.Expr("EXCLUDED.side"),
		"volume":      gorm.Expr("EXCLUDED.volume"),
		"entry_time":  gorm.Expr("EXCLUDED.entry_time"),
		"exit_time":   gorm.Expr("EXCLUDED.exit_time"),
		"entry_price": gorm.Expr("EXCLUDED.entry_price"),
		"exit_price":  gorm.Expr("EXCLUDED.exit_price"),
		"pnl":         gorm.Expr("EXCLUDED.pnl"),
		"commission":  gorm.Expr("EXCLUDED.commission"),
		"swap":        gorm.Expr("EXCLUDED.swap"),
		"raw_payload": gorm.Expr("EXCLUDED.raw_payload"),
		"updated_at":  gorm.Expr("CURRENT_TIMESTAMP"),
	})

	return r.db.WithContext(ctx).
		Omit("Tags").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_number"}, {Name: "ticket"}},
			DoUpdates: assignments,
		}).
		Create(&model).Error
}

func (r *GormTradeRepository) GetTrade(ctx context.Context, id string) (domain.Trade, error) {
	var model TradeModel
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Trade{}, domain.ErrNotFound
		}
		return domain.Trade{}, err
	}

	return model.toDomain(), nil
}

func (r *GormTradeRepository) ListTrades(ctx context.Context, accountNumber string, limit int) ([]domain.Trade, error) {
	var models []TradeModel
	query := r.db.WithContext(ctx).
		Preload("Tags").
		Where("account_number = ?", accountNumber).
		Order("exit_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	trades := make([]domain.Trade, len(models))
	for i, model := range models {
		trades[i] = model.toDomain()
	}

	return trades, nil
}

func (r *GormTradeRepository) ListAllTrades(ctx context.Context) ([]domain.Trade, error) {
	var models []TradeModel
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Order("account_number, exit_time DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	trades := make([]domain.Trade, len(models))
	for i, model := range models {
		trades[i] = model.toDomain()
	}

	return trades, nil
}

func (r *GormTradeRepository) CountTrades(ctx context.Context, accountNumber string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TradeModel{}).
		Where("account_number = ?", accountNumber).
		Count(&count).Error
	return count, err
}

func (r *GormTradeRepository) UpdateAnnotations(ctx context.Context, id string, annotations domain.TradeAnnotations) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model TradeModel
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"note":            stringPointerOrNil(annotations.Note),
			"screenshot_urls": stringsToJSON(annotations.ScreenshotURLs),
			"news_event_ids":  stringsToJSON(annotations.NewsEventIDs),
			"updated_at":      gorm.Expr("CURRENT_TIMESTAMP"),
		}
		if err := tx.Model(&model).Updates(updates).Error; err != nil {
			return err
		}

		var tags []TagModel
		if len(annotations.TagIDs) > 0 {
			if err := tx.Where("id IN ?", annotations.TagIDs).Find(&tags).Error; err != nil {
				return err
			}
			if len(tags) != len(annotations.TagIDs) {
				return fmt.Errorf("unknown tag id in annotation set")
			}
		}

		return tx.Model(&model).Association("Tags").Replace(tags)
	})
}
