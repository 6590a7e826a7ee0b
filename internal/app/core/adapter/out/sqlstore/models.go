package sqlstore

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
)

// sqlTransaction 對應資料庫的 transactions 表
type sqlTransaction struct {
	TransactionID uuid.UUID       `gorm:"column:transaction_id;primaryKey"`
	AccountID     string          `gorm:"column:account_id"`
	Currency      string          `gorm:"column:currency"`
	Amount        decimal.Decimal `gorm:"column:amount"`
	OccurredAt    time.Time       `gorm:"column:occurred_at"`
	BusinessDate  time.Time       `gorm:"column:business_date"`
	RecordedAt    time.Time       `gorm:"column:recorded_at"`
}

func (*sqlTransaction) TableName() string {
	return "transactions"
}

// sqlTransactionAmount 只查金額，允許 NULL
type sqlTransactionAmount struct {
	Amount decimal.NullDecimal `gorm:"column:amount"`
}

// sqlDailyBalance 對應資料庫的 daily_balances 表
type sqlDailyBalance struct {
	AccountID    string          `gorm:"column:account_id;primaryKey"`
	Currency     string          `gorm:"column:currency;primaryKey"`
	BusinessDate time.Time       `gorm:"column:business_date;primaryKey"`
	Balance      decimal.Decimal `gorm:"column:balance"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (*sqlDailyBalance) TableName() string {
	return "daily_balances"
}

func newSQLTransaction(tran *domain.Transaction, now time.Time) *sqlTransaction {
	return &sqlTransaction{
		TransactionID: tran.TransactionID,
		AccountID:     tran.AccountID,
		Currency:      tran.Currency,
		Amount:        tran.Amount,
		OccurredAt:    tran.OccurredAt.UTC(),
		BusinessDate:  dateToTime(tran.BusinessDate),
		RecordedAt:    now,
	}
}

func (b *sqlDailyBalance) toDomain() domain.DailyBalance {
	return domain.DailyBalance{
		AccountID:    b.AccountID,
		Currency:     b.Currency,
		BusinessDate: civil.DateOf(b.BusinessDate),
		Balance:      b.Balance,
		UpdatedAt:    b.UpdatedAt,
	}
}

// dateToTime DATE 欄位一律以 UTC 午夜存取
func dateToTime(d civil.Date) time.Time {
	return d.In(time.UTC)
}
