package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-daily-ledger/internal/app/core/validation"
)

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeNotFound   = "NOT_FOUND"
	ErrorCodeConflict   = "CONFLICT"
	ErrorCodeInternal   = "INTERNAL_ERROR"

	MessageValidationFailed = "Validation failed"
	MessageInternalError    = "An unexpected error occurred"
)

// respondError 依錯誤類型回傳對應的 HTTP 狀態碼
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	resp := ErrorResp{Timestamp: time.Now().UTC()}

	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		resp.Status = http.StatusBadRequest
		resp.Error = ErrorCodeValidation
		resp.Message = MessageValidationFailed
		resp.Details = vErr.Details
	case errors.Is(err, domain.ErrTransactionConflict):
		resp.Status = http.StatusConflict
		resp.Error = ErrorCodeConflict
		resp.Message = err.Error()
	case errors.Is(err, domain.ErrBalanceNotFound):
		resp.Status = http.StatusNotFound
		resp.Error = ErrorCodeNotFound
		resp.Message = err.Error()
	default:
		logger.Error("unexpected error",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		resp.Status = http.StatusInternalServerError
		resp.Error = ErrorCodeInternal
		resp.Message = MessageInternalError
	}

	c.AbortWithStatusJSON(resp.Status, resp)
}
