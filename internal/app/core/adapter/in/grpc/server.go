package grpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-daily-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-daily-ledger/internal/app/core/validation"
	pb "github.com/JoeShih716/go-daily-ledger/proto"
)

// MessageInternalError 未分類錯誤只回傳通用訊息
const MessageInternalError = "An unexpected error occurred"

type GrpcServer struct {
	pb.UnimplementedLedgerServiceServer
	core   *usecase.CoreUseCase
	logger *zap.Logger
}

func NewGrpcServer(core *usecase.CoreUseCase, logger *zap.Logger) *GrpcServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrpcServer{
		core:   core,
		logger: logger,
	}
}

func (s *GrpcServer) PostTransaction(ctx context.Context, req *pb.PostTransactionRequest) (*pb.PostTransactionResponse, error) {
	// 1. 格式驗證
	posting := validation.PostingRequest{
		TransactionID: req.GetTransactionId(),
		AccountID:     req.GetAccountId(),
		Amount:        req.GetAmount(),
		Currency:      req.GetCurrency(),
		OccurredAt:    req.GetOccurredAt(),
	}
	cmd, err := posting.Command()
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	// 2. 入帳
	result, err := s.core.PostTransaction(ctx, cmd)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.PostTransactionResponse{
		TransactionId: result.TransactionID.String(),
		Status:        result.Status.String(),
		Message:       result.Message,
	}, nil
}

func (s *GrpcServer) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	query := validation.BalanceQuery{
		AccountID: req.GetAccountId(),
		Date:      req.GetDate(),
	}
	accountID, date, err := query.Parse()
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	balance, err := s.core.GetBalance(ctx, accountID, date)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.GetBalanceResponse{
		AccountId:    balance.AccountID,
		BusinessDate: balance.BusinessDate.String(),
		Balances:     make([]*pb.CurrencyBalance, 0, len(balance.Balances)),
	}
	for _, b := range balance.Balances {
		resp.Balances = append(resp.Balances, &pb.CurrencyBalance{
			Currency: b.Currency,
			Balance:  b.Balance.String(),
		})
	}
	return resp, nil
}

// toStatus 將錯誤轉成 gRPC status
func (s *GrpcServer) toStatus(ctx context.Context, err error) error {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		return status.Error(codes.InvalidArgument, vErr.Error())
	case errors.Is(err, domain.ErrTransactionConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrBalanceNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		s.logger.Error("unexpected error", zap.Error(err))
		return status.Error(codes.Internal, MessageInternalError)
	}
}
