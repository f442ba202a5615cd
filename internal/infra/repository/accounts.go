package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"journal_server/internal/domain"
)

type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) (*GormAccountRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormAccountRepository{db: db}, nil
}

func (r *GormAccountRepository) CreateAccount(ctx context.Context, account domain.Account) error {
	model := toAccountModel(account)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormAccountRepository) GetAccount(ctx context.Context, number string) (domain.Account, error) {
	var model AccountModel
	err := r.db.WithContext(ctx).
		Where("number = ?", number).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, err
	}

	return model.toDomain(), nil
}

func (r *GormAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	query := r.db.WithContext(ctx).Model(&AccountModel{}).Order("created_at DESC")

	if !filter.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if filter.AccountType != "" {
		query = query.Where("account_type = ?", string(filter.AccountType))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR name LIKE ?", pattern, pattern)
	}

	var models []AccountModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, len(models))
	for i, model := range models {
		accounts[i] = model.toDomain()
	}

	return accounts, nil
}

func (r *GormAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	result := r.db.WithContext(ctx).Model(&AccountModel{}).
		Where("number = ?", account.Number).
		Updates(map[string]interface{}{
			"name":             stringPointerOrNil(account.Name),
			"broker":           stringPointerOrNil(account.Broker),
			"starting_balance": account.StartingBalance,
			"status":           string(account.Status),
			"current_phase":    account.CurrentPhase,
			"evaluation_type":  stringPointerOrNil(string(account.EvaluationType)),
			"updated_at":       gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormAccountRepository) SetArchived(ctx context.Context, number string, archived bool) error {
	result := r.db.WithContext(ctx).Model(&AccountModel{}).
		Where("number = ?", number).
		Updates(map[string]interface{}{
			"is_archived": archived,
			"updated_at":  gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormAccountRepository) DeleteAccountCascade(ctx context.Context, number string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model AccountModel
		if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if err := tx.Exec(
			"DELETE FROM trade_tags WHERE trade_model_id IN (SELECT id FROM trades WHERE account_number = ?)",
			number,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("account_number = ?", number).Delete(&TradeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_number = ?", number).Delete(&TransactionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_number = ?", number).Delete(&EquitySnapshotModel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model).Error
	})
}
