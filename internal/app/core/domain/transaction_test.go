package domain_test

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
)

func TestBusinessDateOf(t *testing.T) {
	tests := []struct {
		name       string
		occurredAt string
		want       civil.Date
	}{
		{
			name:       "negative offset rolls into next UTC day",
			occurredAt: "2025-01-01T23:30:00-02:00",
			want:       civil.Date{Year: 2025, Month: time.January, Day: 2},
		},
		{
			name:       "positive offset rolls back to previous UTC day",
			occurredAt: "2025-01-02T01:00:00+03:00",
			want:       civil.Date{Year: 2025, Month: time.January, Day: 1},
		},
		{
			name:       "UTC midnight stays on same day",
			occurredAt: "2025-03-10T00:00:00Z",
			want:       civil.Date{Year: 2025, Month: time.March, Day: 10},
		},
		{
			name:       "last nanosecond of the UTC day",
			occurredAt: "2025-03-10T23:59:59.999999999Z",
			want:       civil.Date{Year: 2025, Month: time.March, Day: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := time.Parse(time.RFC3339Nano, tt.occurredAt)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, domain.BusinessDateOf(ts))
		})
	}
}

func TestNewTransaction(t *testing.T) {
	id := uuid.New()
	occurredAt := time.Date(2025, 1, 1, 23, 30, 0, 0, time.FixedZone("", -2*60*60))

	tran := domain.NewTransaction(id, "ACC-123", "usd", decimal.RequireFromString("100.50"), occurredAt)

	assert.Equal(t, id, tran.TransactionID)
	assert.Equal(t, "USD", tran.Currency)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.January, Day: 2}, tran.BusinessDate)
	assert.True(t, tran.RecordedAt.IsZero())
	assert.Equal(t, domain.BalanceKey{
		AccountID:    "ACC-123",
		Currency:     "USD",
		BusinessDate: civil.Date{Year: 2025, Month: time.January, Day: 2},
	}, tran.BalanceKey())
}

func TestBalanceKey_StructuralEquality(t *testing.T) {
	day := civil.Date{Year: 2025, Month: time.May, Day: 5}
	balances := map[domain.BalanceKey]int{}

	balances[domain.BalanceKey{AccountID: "A", Currency: "EUR", BusinessDate: day}]++
	balances[domain.BalanceKey{AccountID: "A", Currency: "EUR", BusinessDate: day}]++
	balances[domain.BalanceKey{AccountID: "A", Currency: "USD", BusinessDate: day}]++

	assert.Len(t, balances, 2)
	assert.Equal(t, 2, balances[domain.BalanceKey{AccountID: "A", Currency: "EUR", BusinessDate: day}])

	b := &domain.DailyBalance{AccountID: "A", Currency: "EUR", BusinessDate: day}
	assert.Equal(t, domain.BalanceKey{AccountID: "A", Currency: "EUR", BusinessDate: day}, b.Key())
}

func TestConflictError(t *testing.T) {
	id := uuid.MustParse("3f1c2b8e-6d3a-4a8e-9b7e-2f0d6c1a5e44")
	err := error(&domain.ConflictError{
		TransactionID:   id,
		StoredAmount:    decimal.RequireFromString("100.00"),
		SubmittedAmount: decimal.RequireFromString("999.99"),
	})

	assert.True(t, errors.Is(err, domain.ErrTransactionConflict))
	assert.Contains(t, err.Error(), id.String())
	assert.Contains(t, err.Error(), "already exists with a different amount")
	assert.Contains(t, err.Error(), "999.99")

	var conflict *domain.ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, id, conflict.TransactionID)
}

func TestPostStatus_String(t *testing.T) {
	assert.Equal(t, "CREATED", domain.PostStatusCreated.String())
	assert.Equal(t, "DUPLICATE", domain.PostStatusDuplicate.String())
	assert.Equal(t, "UNKNOWN", domain.PostStatus(0).String())
}
