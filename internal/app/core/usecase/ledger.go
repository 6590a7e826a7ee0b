package usecase

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
)

// Ledger 是帳務儲存層的介面
//
//go:generate mockgen -destination=mocks/mock_ledger.go -package=mocks -source=ledger.go Ledger
type Ledger interface {
	// PostTransaction 以單一原子操作寫入交易並累加日餘額
	// 交易 ID 已存在時不做任何寫入，回傳 PostStatusDuplicate
	PostTransaction(ctx context.Context, tran *domain.Transaction) (domain.PostStatus, error)
	// TransactionAmount 取得已存交易的金額，找不到或為 NULL 時 Valid=false
	TransactionAmount(ctx context.Context, id uuid.UUID) (decimal.NullDecimal, error)
	// DailyBalances 取得帳戶某營業日的所有幣別餘額
	DailyBalances(ctx context.Context, accountID string, date civil.Date) ([]domain.DailyBalance, error)
}
