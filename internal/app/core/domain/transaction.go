package domain

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// amount 使用 decimal，精度：整數 15 位、小數點後 4 位
const (
	AmountIntegerDigits  = 15
	AmountFractionDigits = 4
)

// PostStatus 入帳結果
type PostStatus uint8

const (
	// 新交易，已計入餘額
	PostStatusCreated PostStatus = 1
	// 重複交易，餘額未變動
	PostStatusDuplicate PostStatus = 2
)

func (s PostStatus) String() string {
	switch s {
	case PostStatusCreated:
		return "CREATED"
	case PostStatusDuplicate:
		return "DUPLICATE"
	default:
		return "UNKNOWN"
	}
}

// Transaction 交易，一旦被接受即不可變
type Transaction struct {
	// TransactionID: 外部追蹤號 (UUID)，同時是冪等鍵
	TransactionID uuid.UUID
	AccountID     string
	// Currency: ISO 4217，一律大寫
	Currency string
	Amount   decimal.Decimal
	// OccurredAt: 呼叫端提供的發生時間 (含時區)
	OccurredAt time.Time
	// BusinessDate: OccurredAt 轉成 UTC 後的日期，由核心計算
	BusinessDate civil.Date
	// RecordedAt: 由儲存層寫入時指定
	RecordedAt time.Time
}

// NewTransaction 建立交易並推導營業日
//
// 參數:
//
//	id: 交易 ID (冪等鍵)
//	accountID: 帳戶 ID
//	currency: 幣別 (大小寫皆可)
//	amount: 金額 (可為負數)
//	occurredAt: 交易發生時間
//
// 回傳:
//
//	*Transaction: 幣別已轉大寫、BusinessDate 已計算的交易
func NewTransaction(id uuid.UUID, accountID, currency string, amount decimal.Decimal, occurredAt time.Time) *Transaction {
	return &Transaction{
		TransactionID: id,
		AccountID:     accountID,
		Currency:      strings.ToUpper(currency),
		Amount:        amount,
		OccurredAt:    occurredAt,
		BusinessDate:  BusinessDateOf(occurredAt),
	}
}

// BusinessDateOf 取 UTC 日期作為營業日
func BusinessDateOf(t time.Time) civil.Date {
	return civil.DateOf(t.UTC())
}

// BalanceKey 回傳這筆交易所屬的日餘額鍵
func (t *Transaction) BalanceKey() BalanceKey {
	return BalanceKey{
		AccountID:    t.AccountID,
		Currency:     t.Currency,
		BusinessDate: t.BusinessDate,
	}
}

// PostResult 入帳回應
type PostResult struct {
	TransactionID uuid.UUID
	Status        PostStatus
	Message       string
}
