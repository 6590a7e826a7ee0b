package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-daily-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-daily-ledger/internal/app/core/validation"
)

type LedgerHandler struct {
	core   *usecase.CoreUseCase
	logger *zap.Logger
}

func NewLedgerHandler(core *usecase.CoreUseCase, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{core: core, logger: logger}
}

// RegisterRoutes 註冊路由
func (h *LedgerHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/transactions", h.PostTransaction)
	r.GET("/balances/:account_id", h.GetBalance)
}

// PostTransaction 入帳接口
// POST /api/v1/transactions
//
// 新交易回 201，重複交易回 200
func (h *LedgerHandler) PostTransaction(c *gin.Context) {
	var req PostTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, validation.NewError("body", "Malformed JSON request: "+err.Error()))
		return
	}

	posting := validation.PostingRequest{
		TransactionID: req.TransactionID,
		AccountID:     req.AccountID,
		Amount:        string(req.Amount),
		Currency:      req.Currency,
		OccurredAt:    req.OccurredAt,
	}
	cmd, err := posting.Command()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.core.PostTransaction(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	code := http.StatusOK
	if result.Status == domain.PostStatusCreated {
		code = http.StatusCreated
	}
	c.JSON(code, PostTransactionResp{
		TransactionID: result.TransactionID.String(),
		Status:        result.Status.String(),
		Message:       result.Message,
	})
}

// GetBalance 餘額查詢接口
// GET /api/v1/balances/:account_id?date=YYYY-MM-DD
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	query := validation.BalanceQuery{
		AccountID: c.Param("account_id"),
		Date:      c.Query("date"),
	}
	accountID, date, err := query.Parse()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	balance, err := h.core.GetBalance(c.Request.Context(), accountID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := BalanceResp{
		AccountID:    balance.AccountID,
		BusinessDate: balance.BusinessDate.String(),
		Balances:     make([]CurrencyBalanceResp, 0, len(balance.Balances)),
	}
	for _, b := range balance.Balances {
		resp.Balances = append(resp.Balances, CurrencyBalanceResp{
			Currency: b.Currency,
			Balance:  b.Balance.String(),
		})
	}
	c.JSON(http.StatusOK, resp)
}
