package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidRequest 請求格式錯誤
	ErrInvalidRequest = errors.New("invalid request")

	// ErrBalanceNotFound 找不到餘額
	ErrBalanceNotFound = errors.New("balance not found")

	// ErrTransactionConflict 相同交易 ID 但金額不同
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrPostTransactionFailed 入帳失敗
	ErrPostTransactionFailed = errors.New("post transaction failed")

	// ErrSelectTransactionFailed 查詢交易失敗
	ErrSelectTransactionFailed = errors.New("select transaction failed")

	// ErrSelectBalanceFailed 查詢餘額失敗
	ErrSelectBalanceFailed = errors.New("select balance failed")

	// ErrWALWriteFailed 寫入 WAL 失敗
	ErrWALWriteFailed = errors.New("wal write failed")
)

// ConflictError 交易 ID 被重複使用於不同金額
type ConflictError struct {
	TransactionID   uuid.UUID
	StoredAmount    decimal.Decimal
	SubmittedAmount decimal.Decimal
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("transaction %s already exists with a different amount (stored=%s, submitted=%s)",
		e.TransactionID, e.StoredAmount, e.SubmittedAmount)
}

func (e *ConflictError) Unwrap() error {
	return ErrTransactionConflict
}
