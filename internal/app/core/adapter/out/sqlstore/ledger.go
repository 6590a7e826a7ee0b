package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-daily-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-daily-ledger/pkg/database"
)

const (
	// maxPostAttempts 死結或鎖等待逾時時，整個入帳交易最多執行的次數
	maxPostAttempts  = 5
	postRetryBackoff = 20 * time.Millisecond
)

// SQLLedger 以關聯式資料庫 (PostgreSQL / MySQL) 實作的帳本
// 同一把鍵的並發入帳由資料庫的列鎖與唯一索引序列化，程式內不持有任何鎖
type SQLLedger struct {
	client  *database.Client
	logger  *zap.Logger
	now     func() time.Time
	backoff time.Duration
}

func NewSQLLedger(client *database.Client, logger *zap.Logger) *SQLLedger {
	return &SQLLedger{
		client:  client,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		backoff: postRetryBackoff,
	}
}

// PostTransaction 在同一個資料庫交易內寫入交易並累加日餘額
// 資料庫回報死結或鎖等待逾時時，整個交易已 rollback，重新執行一次
//
// 參數:
//
//	ctx: 上下文，取消時資料庫交易會 rollback
//	tran: 交易物件
//
// 回傳:
//
//	domain.PostStatus: 寫入成功為 Created，交易 ID 已存在為 Duplicate
//	error: 包裝 domain.ErrPostTransactionFailed 的資料庫錯誤
func (ledger *SQLLedger) PostTransaction(ctx context.Context, tran *domain.Transaction) (domain.PostStatus, error) {
	var err error
	for attempt := 1; attempt <= maxPostAttempts; attempt++ {
		var status domain.PostStatus
		status, err = ledger.post(ctx, tran)
		if err == nil {
			return status, nil
		}
		if !isRetryable(err) || attempt == maxPostAttempts {
			break
		}

		wait := time.Duration(attempt) * ledger.backoff
		ledger.logger.Warn("post transaction aborted by lock conflict, retrying",
			zap.String("transaction_id", tran.TransactionID.String()),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxPostAttempts),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, fmt.Errorf("%w: %w", domain.ErrPostTransactionFailed, ctx.Err())
		case <-timer.C:
		}
	}
	return 0, fmt.Errorf("%w: %w", domain.ErrPostTransactionFailed, err)
}

// post 執行一次入帳交易
func (ledger *SQLLedger) post(ctx context.Context, tran *domain.Transaction) (domain.PostStatus, error) {
	now := ledger.now()
	status := domain.PostStatusCreated

	err := ledger.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 條件式寫入交易，主鍵衝突時不做任何事
		row := newSQLTransaction(tran, now)
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_id"}},
			DoNothing: true,
		}).Create(row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			status = domain.PostStatusDuplicate
			return nil
		}

		// 2. 累加日餘額，列不存在時以本筆金額建立
		balance := &sqlDailyBalance{
			AccountID:    tran.AccountID,
			Currency:     tran.Currency,
			BusinessDate: dateToTime(tran.BusinessDate),
			Balance:      tran.Amount,
			UpdatedAt:    now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}, {Name: "currency"}, {Name: "business_date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance":    gorm.Expr("daily_balances.balance + CAST(? AS DECIMAL(19,4))", tran.Amount),
				"updated_at": now,
			}),
		}).Create(balance).Error
	})
	if err != nil {
		return 0, err
	}
	return status, nil
}

// isRetryable 判斷資料庫錯誤是否為死結或鎖等待逾時
//
//	MySQL: 1213 ER_LOCK_DEADLOCK, 1205 ER_LOCK_WAIT_TIMEOUT
//	PostgreSQL: 40P01 deadlock_detected, 40001 serialization_failure
func isRetryable(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1213 || myErr.Number == 1205
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40P01" || pgErr.Code == "40001"
	}
	return false
}

// TransactionAmount 取得已存交易的金額，查無資料時回傳 Valid=false
func (ledger *SQLLedger) TransactionAmount(ctx context.Context, id uuid.UUID) (decimal.NullDecimal, error) {
	var row sqlTransactionAmount
	result := ledger.client.DB().WithContext(ctx).
		Model(&sqlTransaction{}).
		Select("amount").
		Where("transaction_id = ?", id).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %w", domain.ErrSelectTransactionFailed, result.Error)
	}
	if result.RowsAffected == 0 {
		return decimal.NullDecimal{}, nil
	}
	return row.Amount, nil
}

// DailyBalances 取得帳戶某營業日的所有幣別餘額 (依幣別排序)
func (ledger *SQLLedger) DailyBalances(ctx context.Context, accountID string, date civil.Date) ([]domain.DailyBalance, error) {
	var rows []sqlDailyBalance
	err := ledger.client.DB().WithContext(ctx).
		Where("account_id = ? AND business_date = ?", accountID, dateToTime(date)).
		Order("currency").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSelectBalanceFailed, err)
	}

	balances := make([]domain.DailyBalance, 0, len(rows))
	for i := range rows {
		balances = append(balances, rows[i].toDomain())
	}
	return balances, nil
}

var _ usecase.Ledger = (*SQLLedger)(nil)
