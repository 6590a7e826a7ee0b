package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpc_adapter "github.com/JoeShih716/go-daily-ledger/internal/app/core/adapter/in/grpc"
	http_adapter "github.com/JoeShih716/go-daily-ledger/internal/app/core/adapter/in/http"
	memory_adapter "github.com/JoeShih716/go-daily-ledger/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-daily-ledger/internal/app/core/adapter/out/sqlstore"
	"github.com/JoeShih716/go-daily-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-daily-ledger/internal/config"
	"github.com/JoeShih716/go-daily-ledger/internal/platform/logger"
	"github.com/JoeShih716/go-daily-ledger/pkg/database"
	"github.com/JoeShih716/go-daily-ledger/pkg/wal"
	pb "github.com/JoeShih716/go-daily-ledger/proto"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 1. 載入設定
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. 初始化 Logger
	appLogger, err := logger.NewLogger(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLogger.Sync()

	// 3. 初始化帳本 (Driven Adapter)
	ledger, closeLedger, err := newLedger(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to init ledger", zap.String("store", cfg.Store.Type), zap.Error(err))
	}
	defer closeLedger()

	// 4. 初始化 UseCase
	coreUseCase := usecase.NewCoreUseCase(ledger, appLogger)

	// 5. 啟動 gRPC Server
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("addr", cfg.Server.GRPCAddr), zap.Error(err))
	}
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpc_adapter.RecoveryInterceptor(appLogger),
		grpc_adapter.LoggingInterceptor(appLogger),
	))
	pb.RegisterLedgerServiceServer(grpcServer, grpc_adapter.NewGrpcServer(coreUseCase, appLogger))

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("addr", cfg.Server.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// 6. 啟動 HTTP Server
	httpServer := http_adapter.NewServer(
		appLogger,
		cfg.Server.HTTPAddr,
		cfg.Server.Mode,
		http_adapter.NewLedgerHandler(coreUseCase, appLogger),
	)
	go func() {
		if err := httpServer.Run(); err != nil {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Error("http shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server exited")
}

// newLedger 依設定建立帳本，回傳對應的關閉函數
func newLedger(cfg *config.Config, appLogger *zap.Logger) (usecase.Ledger, func(), error) {
	switch cfg.Store.Type {
	case config.StoreMemory:
		if cfg.Store.WALPath == "" {
			appLogger.Warn("memory store without WAL, data is lost on restart")
			ledger, err := memory_adapter.NewMutexLedger(nil)
			return ledger, func() {}, err
		}

		walFile, err := wal.NewWAL(cfg.Store.WALPath, wal.WithLogger(appLogger))
		if err != nil {
			return nil, nil, err
		}
		ledger, err := memory_adapter.NewMutexLedger(walFile)
		if err != nil {
			walFile.Close()
			return nil, nil, err
		}
		appLogger.Info("Using memory store", zap.String("wal", cfg.Store.WALPath))
		return ledger, func() {
			if err := walFile.Close(); err != nil {
				appLogger.Error("failed to close wal", zap.Error(err))
			}
		}, nil

	default:
		// 先連線 (含重試)，確認資料庫可用後再跑 migration
		dbClient, err := database.NewClient(cfg.Database, appLogger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Store.AutoMigrate {
			if err := sqlstore.Migrate(cfg.Database, appLogger); err != nil {
				dbClient.Close()
				return nil, nil, err
			}
		}
		appLogger.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.String("host", cfg.Database.Host),
		)
		return sqlstore.NewSQLLedger(dbClient, appLogger), func() {
			if err := dbClient.Close(); err != nil {
				appLogger.Error("failed to close database", zap.Error(err))
			}
		}, nil
	}
}
