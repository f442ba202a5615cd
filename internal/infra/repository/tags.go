package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"journal_server/internal/domain"
)

type GormTagRepository struct {
	db *gorm.DB
}

func NewGormTagRepository(db *gorm.DB) (*GormTagRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTagRepository{db: db}, nil
}

func (r *GormTagRepository) CreateTag(ctx context.Context, tag domain.Tag) error {
	model := toTagModel(tag)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormTagRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var models []TagModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}

	tags := make([]domain.Tag, len(models))
	for i, model := range models {
		tags[i] = model.toDomain()
	}

	return tags, nil
}

func (r *GormTagRepository) DeleteTag(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM trade_tags WHERE tag_model_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&TagModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
