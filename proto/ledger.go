package proto

// PostTransactionRequest 入帳請求
type PostTransactionRequest struct {
	TransactionId string `json:"transaction_id,omitempty"`
	AccountId     string `json:"account_id,omitempty"`
	// Amount: 十進位字串，避免浮點誤差
	Amount   string `json:"amount,omitempty"`
	Currency string `json:"currency,omitempty"`
	// OccurredAt: RFC 3339，必須帶時區
	OccurredAt string `json:"occurred_at,omitempty"`
}

func (x *PostTransactionRequest) GetTransactionId() string {
	if x != nil {
		return x.TransactionId
	}
	return ""
}

func (x *PostTransactionRequest) GetAccountId() string {
	if x != nil {
		return x.AccountId
	}
	return ""
}

func (x *PostTransactionRequest) GetAmount() string {
	if x != nil {
		return x.Amount
	}
	return ""
}

func (x *PostTransactionRequest) GetCurrency() string {
	if x != nil {
		return x.Currency
	}
	return ""
}

func (x *PostTransactionRequest) GetOccurredAt() string {
	if x != nil {
		return x.OccurredAt
	}
	return ""
}

// PostTransactionResponse 入帳結果
type PostTransactionResponse struct {
	TransactionId string `json:"transaction_id,omitempty"`
	// Status: CREATED 或 DUPLICATE
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

func (x *PostTransactionResponse) GetTransactionId() string {
	if x != nil {
		return x.TransactionId
	}
	return ""
}

func (x *PostTransactionResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

func (x *PostTransactionResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

// GetBalanceRequest 餘額查詢
type GetBalanceRequest struct {
	AccountId string `json:"account_id,omitempty"`
	// Date: YYYY-MM-DD
	Date string `json:"date,omitempty"`
}

func (x *GetBalanceRequest) GetAccountId() string {
	if x != nil {
		return x.AccountId
	}
	return ""
}

func (x *GetBalanceRequest) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

type CurrencyBalance struct {
	Currency string `json:"currency,omitempty"`
	Balance  string `json:"balance,omitempty"`
}

func (x *CurrencyBalance) GetCurrency() string {
	if x != nil {
		return x.Currency
	}
	return ""
}

func (x *CurrencyBalance) GetBalance() string {
	if x != nil {
		return x.Balance
	}
	return ""
}

// GetBalanceResponse 帳戶某營業日各幣別餘額
type GetBalanceResponse struct {
	AccountId    string             `json:"account_id,omitempty"`
	BusinessDate string             `json:"business_date,omitempty"`
	Balances     []*CurrencyBalance `json:"balances,omitempty"`
}

func (x *GetBalanceResponse) GetAccountId() string {
	if x != nil {
		return x.AccountId
	}
	return ""
}

func (x *GetBalanceResponse) GetBusinessDate() string {
	if x != nil {
		return x.BusinessDate
	}
	return ""
}

func (x *GetBalanceResponse) GetBalances() []*CurrencyBalance {
	if x != nil {
		return x.Balances
	}
	return nil
}
