package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
)

var (
	accountIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// 標準 8-4-4-4-12 格式，大小寫皆可
	uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

// newValidator 建立 validator 並註冊自訂規則
func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 錯誤欄位使用 json tag 名稱
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"uuid_string":   isUUIDString,
		"account_id":    isAccountID,
		"decimal":       isDecimal,
		"amount_digits": hasAmountDigits,
		"iso_currency":  isISOCurrency,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("failed to register %q: %w", tag, err)
		}
	}
	return v, nil
}

// getValidator 回傳共用的 validator 實例
func getValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = newValidator()
	})
	return validate, errValidate
}

func isUUIDString(fl validator.FieldLevel) bool {
	return uuidPattern.MatchString(fl.Field().String())
}

func isAccountID(fl validator.FieldLevel) bool {
	return accountIDPattern.MatchString(fl.Field().String())
}

func isDecimal(fl validator.FieldLevel) bool {
	_, err := decimal.NewFromString(fl.Field().String())
	return err == nil
}

func hasAmountDigits(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		// 交給 decimal 規則回報
		return true
	}
	return FitsAmountPrecision(d)
}

func isISOCurrency(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	_, err := currency.ParseISO(strings.ToUpper(code))
	return err == nil
}

// FitsAmountPrecision 檢查金額是否在整數 15 位、小數 4 位以內
// 小數位數以字面的 scale 計算，100.00000 視為 5 位小數
func FitsAmountPrecision(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	fraction := 0
	if exp < 0 {
		fraction = -exp
	}

	digits := len(d.Coefficient().String())
	if d.Coefficient().Sign() < 0 {
		digits-- // 負號
	}
	integer := digits + exp
	if integer < 0 {
		integer = 0
	}
	return integer <= domain.AmountIntegerDigits && fraction <= domain.AmountFractionDigits
}

// Error 驗證失敗，Details 為 欄位 -> 錯誤訊息
type Error struct {
	Details map[string]string
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Details[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return domain.ErrInvalidRequest
}

// NewError 以單一欄位建立驗證錯誤
func NewError(field, message string) *Error {
	return &Error{Details: map[string]string{field: message}}
}

// validateStruct 執行 struct tag 驗證，並把 validator 的錯誤轉成 *Error
func validateStruct(payload any) error {
	v, err := getValidator()
	if err != nil {
		return err
	}
	err = v.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	details := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		// 同欄位只保留第一個錯誤
		if _, ok := details[fe.Field()]; ok {
			continue
		}
		details[fe.Field()] = messageFor(fe.Field(), fe.Tag())
	}
	return &Error{Details: details}
}
