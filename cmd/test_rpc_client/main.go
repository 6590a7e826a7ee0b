package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/JoeShih716/go-daily-ledger/internal/platform/logger"
	grpcpool "github.com/JoeShih716/go-daily-ledger/pkg/grpc"
	pb "github.com/JoeShih716/go-daily-ledger/proto"
)

// 對執行中的服務做並發入帳，並驗證
//  1. 每筆交易只入帳一次 (每筆都會重送 retries 次)
//  2. 最終餘額等於所有交易金額總和
func main() {
	os.Exit(run(os.Args[1:]))
}

// run 執行壓測並回傳 exit code
func run(args []string) int {
	fs := flag.NewFlagSet("test_rpc_client", flag.ContinueOnError)
	target := fs.String("target", "localhost:50051", "ledger gRPC address")
	total := fs.Int("total", 1000, "number of distinct transactions")
	concurrency := fs.Int("concurrency", 100, "concurrent requests")
	retries := fs.Int("retries", 1, "extra resubmissions per transaction")
	amountFlag := fs.String("amount", "100.00", "amount per transaction")
	currency := fs.String("currency", "USD", "currency code")
	account := fs.String("account", "", "account id (default: random)")
	timeout := fs.Duration("timeout", 120*time.Second, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log, err := logger.NewLogger(logger.ModeDebug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Sync()

	amount, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		log.Error("invalid amount", zap.Error(err))
		return 1
	}
	accountID := *account
	if accountID == "" {
		accountID = "LOAD-" + uuid.NewString()[:8]
	}

	pool := grpcpool.NewPool(grpcpool.WithDefaultCallOptions(grpc.CallContentSubtype(pb.CodecName)))
	defer pool.Close()
	conn, err := pool.GetConnection(*target)
	if err != nil {
		log.Error("did not connect", zap.Error(err))
		return 1
	}
	c := pb.NewLedgerServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	occurredAt := time.Now().UTC()
	var created, duplicates, failures atomic.Int64

	var wg sync.WaitGroup
	sem := make(chan struct{}, *concurrency)
	startTime := time.Now()

	for i := 0; i < *total; i++ {
		sem <- struct{}{}
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			req := &pb.PostTransactionRequest{
				TransactionId: uuid.NewString(),
				AccountId:     accountID,
				Amount:        amount.String(),
				Currency:      *currency,
				OccurredAt:    occurredAt.Format(time.RFC3339Nano),
			}
			for attempt := 0; attempt <= *retries; attempt++ {
				resp, err := c.PostTransaction(ctx, req)
				if err != nil {
					failures.Add(1)
					if idx%100 == 0 {
						log.Warn("post failed", zap.Int("idx", idx), zap.Error(err))
					}
					continue
				}
				switch resp.GetStatus() {
				case "CREATED":
					created.Add(1)
				case "DUPLICATE":
					duplicates.Add(1)
				}
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(startTime)

	balance, err := c.GetBalance(ctx, &pb.GetBalanceRequest{
		AccountId: accountID,
		Date:      occurredAt.Format("2006-01-02"),
	})
	if err != nil {
		log.Error("get balance failed", zap.Error(err))
		return 1
	}

	expected := amount.Mul(decimal.NewFromInt(created.Load()))
	var actual decimal.Decimal
	for _, b := range balance.GetBalances() {
		if strings.EqualFold(b.GetCurrency(), *currency) {
			actual = decimal.RequireFromString(b.GetBalance())
		}
	}

	requests := int64(*total) * int64(*retries+1)
	log.Info("load finished",
		zap.String("account_id", accountID),
		zap.Int64("requests", requests),
		zap.Int64("created", created.Load()),
		zap.Int64("duplicates", duplicates.Load()),
		zap.Int64("failures", failures.Load()),
		zap.Duration("elapsed", elapsed),
		zap.Float64("tps", float64(requests)/elapsed.Seconds()),
		zap.String("expected_balance", expected.String()),
		zap.String("actual_balance", actual.String()),
	)

	if created.Load() != int64(*total) || !actual.Equal(expected) {
		log.Error("verification failed")
		return 1
	}
	log.Info("verification passed")
	return 0
}
