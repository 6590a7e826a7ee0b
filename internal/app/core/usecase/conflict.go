package usecase

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
)

// ResolveDuplicate 判斷重複交易是單純重送還是衝突
//
// 參數:
//
//	id: 交易 ID
//	submitted: 本次送來的金額
//	stored: 已存交易的金額
//
// 回傳:
//
//	error: 金額不同時回傳 *domain.ConflictError，其餘為 nil
//
// 任一方金額缺值時無法判斷，視為一般重複交易
func ResolveDuplicate(id uuid.UUID, submitted, stored decimal.NullDecimal) error {
	if !submitted.Valid || !stored.Valid {
		return nil
	}
	// 數值比較，100.00 與 100.0000 相等
	if submitted.Decimal.Equal(stored.Decimal) {
		return nil
	}
	return &domain.ConflictError{
		TransactionID:   id,
		StoredAmount:    stored.Decimal,
		SubmittedAmount: submitted.Decimal,
	}
}
