package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// BalanceKey 日餘額的自然鍵 (account_id, currency, business_date)
// 純值型別，可直接當 map key，相等性只看欄位
type BalanceKey struct {
	AccountID    string
	Currency     string
	BusinessDate civil.Date
}

// DailyBalance 帳戶每日每幣別的累計餘額
type DailyBalance struct {
	AccountID    string
	Currency     string
	BusinessDate civil.Date
	Balance      decimal.Decimal
	UpdatedAt    time.Time
}

// Key 回傳自然鍵
func (b *DailyBalance) Key() BalanceKey {
	return BalanceKey{
		AccountID:    b.AccountID,
		Currency:     b.Currency,
		BusinessDate: b.BusinessDate,
	}
}

// CurrencyBalance 單一幣別餘額
type CurrencyBalance struct {
	Currency string
	Balance  decimal.Decimal
}

// AccountBalance 帳戶某營業日所有幣別的餘額，依幣別排序
type AccountBalance struct {
	AccountID    string
	BusinessDate civil.Date
	Balances     []CurrencyBalance
}
