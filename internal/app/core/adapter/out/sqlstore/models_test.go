package sqlstore

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
)

func TestNewSQLTransaction(t *testing.T) {
	offset := time.FixedZone("UTC+8", 8*60*60)
	occurredAt := time.Date(2025, 3, 1, 2, 0, 0, 0, offset)
	now := time.Date(2025, 3, 1, 0, 0, 1, 0, time.UTC)
	tran := domain.NewTransaction(uuid.New(), "ACC-1", "twd", decimal.RequireFromString("12.5"), occurredAt)

	row := newSQLTransaction(tran, now)

	assert.Equal(t, tran.TransactionID, row.TransactionID)
	assert.Equal(t, "TWD", row.Currency)
	assert.Equal(t, time.UTC, row.OccurredAt.Location())
	assert.True(t, row.OccurredAt.Equal(occurredAt))
	// 台北 02:00 是 UTC 前一天 18:00
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), row.BusinessDate)
	assert.Equal(t, now, row.RecordedAt)
}

func TestSQLDailyBalance_ToDomain(t *testing.T) {
	date := civil.Date{Year: 2025, Month: time.February, Day: 28}
	row := sqlDailyBalance{
		AccountID:    "ACC-1",
		Currency:     "USD",
		BusinessDate: dateToTime(date),
		Balance:      decimal.RequireFromString("-3.1400"),
	}

	balance := row.toDomain()

	assert.Equal(t, domain.BalanceKey{AccountID: "ACC-1", Currency: "USD", BusinessDate: date}, balance.Key())
	assert.True(t, balance.Balance.Equal(decimal.RequireFromString("-3.14")))
}
