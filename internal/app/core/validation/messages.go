package validation

// fieldMessages 欄位 -> 規則 -> 錯誤訊息
var fieldMessages = map[string]map[string]string{
	"transaction_id": {
		"required":    "Transaction ID is required",
		"uuid_string": "Transaction ID must be a valid UUID",
	},
	"account_id": {
		"required":   "Account ID is required",
		"max":        "Account ID must be between 1 and 64 characters",
		"account_id": "Account ID can only contain letters, numbers, hyphens and underscores",
	},
	"amount": {
		"required":      "Amount is required",
		"decimal":       "Amount must be a valid decimal number",
		"amount_digits": "Amount must have max 15 integer and 4 decimal digits",
	},
	"currency": {
		"required":     "Currency is required",
		"iso_currency": "Currency must be a valid ISO 4217 code",
	},
	"occurred_at": {
		"required": "Timestamp is required",
		"datetime": "Timestamp must be an RFC 3339 date-time with offset",
	},
	"date": {
		"required": "Date is required",
		"datetime": "Date must be in YYYY-MM-DD format",
	},
}

func messageFor(field, tag string) string {
	if msg, ok := fieldMessages[field][tag]; ok {
		return msg
	}
	return "invalid value"
}
