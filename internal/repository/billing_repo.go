package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
)

// ==================== 接口定义 ====================

var ErrBillingNotFound = errors.New("billing account not found")

// BillingRepository Stripe 账户仓储接口
type BillingRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*model.BillingAccount, error)
	Upsert(ctx context.Context, account *model.BillingAccount) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
}

// ==================== 仓储实现 ====================

type billingRepo struct {
	db *gorm.DB
}

// NewBillingRepository 创建账户仓储
func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepo{db: db}
}

func (r *billingRepo) GetByUserID(ctx context.Context, userID int64) (*model.BillingAccount, error) {
	var account model.BillingAccount
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBillingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *billingRepo) Upsert(ctx context.Context, account *model.BillingAccount) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"stripe_account_id", "status",
				"charges_enabled", "payouts_enabled", "details_submitted",
				"updated_at",
			}),
		}).
		Create(account).Error
}

func (r *billingRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.BillingAccount{}).
		Where("id = ?", id).
		Updates(fields).Error
}
