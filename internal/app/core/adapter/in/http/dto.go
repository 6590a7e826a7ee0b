package http

import (
	"bytes"
	"encoding/json"
	"time"
)

// PostTransactionReq 對應前端發來的 JSON
type PostTransactionReq struct {
	TransactionID string      `json:"transaction_id"`
	AccountID     string      `json:"account_id"`
	Amount        AmountField `json:"amount"`
	Currency      string      `json:"currency"`
	OccurredAt    string      `json:"occurred_at"`
}

// AmountField 金額可為 JSON number 或字串，保留原始字面值
type AmountField string

func (a *AmountField) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = AmountField(n.String())
	return nil
}

type PostTransactionResp struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

type CurrencyBalanceResp struct {
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

type BalanceResp struct {
	AccountID    string                `json:"account_id"`
	BusinessDate string                `json:"business_date"`
	Balances     []CurrencyBalanceResp `json:"balances"`
}

// ErrorResp 統一的錯誤回應格式
type ErrorResp struct {
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
