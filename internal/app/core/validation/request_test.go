package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
)

func validRequest() PostingRequest {
	return PostingRequest{
		TransactionID: "550e8400-e29b-41d4-a716-446655440000",
		AccountID:     "ACC-001_a",
		Amount:        "100.50",
		Currency:      "usd",
		OccurredAt:    "2024-01-01T23:30:00-05:00",
	}
}

func TestPostingRequest_Command(t *testing.T) {
	req := validRequest()

	cmd, err := req.Command()
	require.NoError(t, err)

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", cmd.TransactionID.String())
	assert.Equal(t, "ACC-001_a", cmd.AccountID)
	assert.True(t, cmd.Amount.Equal(decimal.RequireFromString("100.5")))
	assert.Equal(t, "usd", cmd.Currency)
	assert.True(t, cmd.OccurredAt.Equal(time.Date(2024, 1, 2, 4, 30, 0, 0, time.UTC)))
}

func TestPostingRequest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *PostingRequest)
		field   string
		message string
	}{
		{"missing transaction id", func(r *PostingRequest) { r.TransactionID = "" }, "transaction_id", "Transaction ID is required"},
		{"malformed transaction id", func(r *PostingRequest) { r.TransactionID = "not-a-uuid" }, "transaction_id", "Transaction ID must be a valid UUID"},
		{"missing account", func(r *PostingRequest) { r.AccountID = "" }, "account_id", "Account ID is required"},
		{"account too long", func(r *PostingRequest) { r.AccountID = strings.Repeat("a", 65) }, "account_id", "Account ID must be between 1 and 64 characters"},
		{"account bad chars", func(r *PostingRequest) { r.AccountID = "ACC 001!" }, "account_id", "Account ID can only contain letters, numbers, hyphens and underscores"},
		{"missing amount", func(r *PostingRequest) { r.Amount = "" }, "amount", "Amount is required"},
		{"amount not a number", func(r *PostingRequest) { r.Amount = "ten" }, "amount", "Amount must be a valid decimal number"},
		{"too many fraction digits", func(r *PostingRequest) { r.Amount = "1.00001" }, "amount", "Amount must have max 15 integer and 4 decimal digits"},
		{"too many integer digits", func(r *PostingRequest) { r.Amount = "1234567890123456" }, "amount", "Amount must have max 15 integer and 4 decimal digits"},
		{"missing currency", func(r *PostingRequest) { r.Currency = "" }, "currency", "Currency is required"},
		{"unknown currency", func(r *PostingRequest) { r.Currency = "XYZ" }, "currency", "Currency must be a valid ISO 4217 code"},
		{"currency wrong length", func(r *PostingRequest) { r.Currency = "USDT" }, "currency", "Currency must be a valid ISO 4217 code"},
		{"missing timestamp", func(r *PostingRequest) { r.OccurredAt = "" }, "occurred_at", "Timestamp is required"},
		{"timestamp without offset", func(r *PostingRequest) { r.OccurredAt = "2024-01-01T10:00:00" }, "occurred_at", "Timestamp must be an RFC 3339 date-time with offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := req.Command()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)

			var vErr *Error
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.message, vErr.Details[tt.field])
		})
	}
}

func TestPostingRequest_MultipleFieldErrors(t *testing.T) {
	req := PostingRequest{}

	_, err := req.Command()

	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Details, 5)
	assert.Contains(t, err.Error(), "account_id: Account ID is required")
}

func TestPostingRequest_AcceptedBoundaries(t *testing.T) {
	for _, amount := range []string{"-100.25", "0", "999999999999999.9999", "-0.0001", "100.0000"} {
		req := validRequest()
		req.Amount = amount
		_, err := req.Command()
		assert.NoError(t, err, amount)
	}

	req := validRequest()
	req.TransactionID = strings.ToUpper(req.TransactionID)
	req.AccountID = strings.Repeat("a", 64)
	req.OccurredAt = "2024-01-01T10:00:00.123456Z"
	_, err := req.Command()
	assert.NoError(t, err)
}

func TestFitsAmountPrecision(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"100.1234", true},
		{"100.12345", false},
		{"100.00000", false},
		{"123456789012345", true},
		{"1234567890123456", false},
		{"-123456789012345.1234", true},
		{"0.5", true},
		{"1e15", false},
		{"1e14", true},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FitsAmountPrecision(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestBalanceQuery_Parse(t *testing.T) {
	q := BalanceQuery{AccountID: "ACC-1", Date: "2024-02-29"}
	account, date, err := q.Parse()
	require.NoError(t, err)
	assert.Equal(t, "ACC-1", account)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 29}, date)

	for _, bad := range []BalanceQuery{
		{AccountID: "ACC-1", Date: "2024/02/29"},
		{AccountID: "ACC-1", Date: ""},
		{AccountID: "ACC 1", Date: "2024-02-29"},
		{AccountID: "ACC-1", Date: "2023-02-29"},
	} {
		_, _, err := bad.Parse()
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, "%+v", bad)
	}
}
