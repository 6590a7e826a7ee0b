package validation

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/usecase"
)

// PostingRequest 入帳請求的原始欄位 (HTTP 與 gRPC 共用)
type PostingRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,uuid_string"`
	AccountID     string `json:"account_id" validate:"required,max=64,account_id"`
	Amount        string `json:"amount" validate:"required,decimal,amount_digits"`
	Currency      string `json:"currency" validate:"required,iso_currency"`
	OccurredAt    string `json:"occurred_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Command 驗證並轉換成入帳指令
//
// 回傳:
//
//	usecase.PostTransactionCommand: 已解析的指令
//	error: *Error (符合 domain.ErrInvalidRequest)
func (r *PostingRequest) Command() (usecase.PostTransactionCommand, error) {
	if err := validateStruct(r); err != nil {
		return usecase.PostTransactionCommand{}, err
	}

	// 以下解析在 tag 驗證後不會失敗，仍保留錯誤處理
	id, err := uuid.Parse(r.TransactionID)
	if err != nil {
		return usecase.PostTransactionCommand{}, NewError("transaction_id", messageFor("transaction_id", "uuid_string"))
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return usecase.PostTransactionCommand{}, NewError("amount", messageFor("amount", "decimal"))
	}
	occurredAt, err := time.Parse(time.RFC3339Nano, r.OccurredAt)
	if err != nil {
		return usecase.PostTransactionCommand{}, NewError("occurred_at", messageFor("occurred_at", "datetime"))
	}

	return usecase.PostTransactionCommand{
		TransactionID: id,
		AccountID:     r.AccountID,
		Currency:      r.Currency,
		Amount:        amount,
		OccurredAt:    occurredAt,
	}, nil
}

// BalanceQuery 餘額查詢參數
type BalanceQuery struct {
	AccountID string `json:"account_id" validate:"required,max=64,account_id"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Parse 驗證並回傳帳戶與營業日
func (q *BalanceQuery) Parse() (string, civil.Date, error) {
	if err := validateStruct(q); err != nil {
		return "", civil.Date{}, err
	}
	date, err := civil.ParseDate(q.Date)
	if err != nil {
		return "", civil.Date{}, NewError("date", messageFor("date", "datetime"))
	}
	return q.AccountID, date, nil
}
