package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"journal_server/internal/domain"
)

type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) (*GormTransactionRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTransactionRepository{db: db}, nil
}

func (r *GormTransactionRepository) AddTransaction(ctx context.Context, tx domain.Transaction) error {
	model := toTransactionModel(tx)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormTransactionRepository) ListTransactions(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error) {
	var models []TransactionModel
	query := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("paid_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, len(models))
	for i, model := range models {
		transactions[i] = model.toDomain()
	}

	return transactions, nil
}

func (r *GormTransactionRepository) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var models []TransactionModel
	if err := r.db.WithContext(ctx).
		Order("account_number, paid_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, len(models))
	for i, model := range models {
		transactions[i] = model.toDomain()
	}

	return transactions, nil
}

func (r *GormTransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
