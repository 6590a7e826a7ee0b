package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
)

const (
	MessageCreated   = "Transaction processed successfully"
	MessageDuplicate = "Transaction already processed"
)

// PostTransactionCommand 入帳指令 (已通過格式驗證)
// 營業日不在此提供，一律由核心從 OccurredAt 計算
type PostTransactionCommand struct {
	TransactionID uuid.UUID
	AccountID     string
	Currency      string
	Amount        decimal.Decimal
	OccurredAt    time.Time
}

// CoreUseCase 是核心業務邏輯層
type CoreUseCase struct {
	ledger Ledger
	logger *zap.Logger
}

func NewCoreUseCase(ledger Ledger, logger *zap.Logger) *CoreUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoreUseCase{
		ledger: ledger,
		logger: logger,
	}
}

// PostTransaction 處理交易
//
// 參數:
//
//	ctx: 上下文
//	cmd: 入帳指令
//
// 回傳:
//
//	*domain.PostResult: Created 或 Duplicate
//	error: 金額衝突 (domain.ErrTransactionConflict) 或儲存層錯誤
func (c *CoreUseCase) PostTransaction(ctx context.Context, cmd PostTransactionCommand) (*domain.PostResult, error) {
	tran := domain.NewTransaction(cmd.TransactionID, cmd.AccountID, cmd.Currency, cmd.Amount, cmd.OccurredAt)

	status, err := c.ledger.PostTransaction(ctx, tran)
	if err != nil {
		return nil, err
	}

	if status == domain.PostStatusCreated {
		c.logger.Info("transaction posted",
			zap.Stringer("transaction_id", tran.TransactionID),
			zap.String("account_id", tran.AccountID),
			zap.String("currency", tran.Currency),
			zap.Stringer("business_date", tran.BusinessDate),
		)
		return &domain.PostResult{
			TransactionID: tran.TransactionID,
			Status:        domain.PostStatusCreated,
			Message:       MessageCreated,
		}, nil
	}

	// 重複交易：餘額已由第一次入帳更新，這裡只比對金額
	stored, err := c.ledger.TransactionAmount(ctx, tran.TransactionID)
	if err != nil {
		return nil, err
	}
	if err := ResolveDuplicate(tran.TransactionID, decimal.NewNullDecimal(tran.Amount), stored); err != nil {
		c.logger.Warn("transaction id reused with a different amount",
			zap.Stringer("transaction_id", tran.TransactionID),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Info("duplicate transaction detected", zap.Stringer("transaction_id", tran.TransactionID))
	return &domain.PostResult{
		TransactionID: tran.TransactionID,
		Status:        domain.PostStatusDuplicate,
		Message:       MessageDuplicate,
	}, nil
}

// GetBalance 取得帳戶某營業日各幣別餘額
func (c *CoreUseCase) GetBalance(ctx context.Context, accountID string, date civil.Date) (*domain.AccountBalance, error) {
	balances, err := c.ledger.DailyBalances(ctx, accountID, date)
	if err != nil {
		return nil, err
	}
	if len(balances) == 0 {
		return nil, fmt.Errorf("%w: no balance found for account %s on date %s", domain.ErrBalanceNotFound, accountID, date)
	}

	result := &domain.AccountBalance{
		AccountID:    accountID,
		BusinessDate: date,
		Balances:     make([]domain.CurrencyBalance, 0, len(balances)),
	}
	for _, b := range balances {
		result.Balances = append(result.Balances, domain.CurrencyBalance{
			Currency: b.Currency,
			Balance:  b.Balance,
		})
	}
	slices.SortStableFunc(result.Balances, func(a, b domain.CurrencyBalance) int {
		return strings.Compare(a.Currency, b.Currency)
	})
	return result, nil
}
