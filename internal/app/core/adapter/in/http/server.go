package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server 封裝 HTTP 服務
type Server struct {
	engine *gin.Engine
	logger *zap.Logger
	addr   string
	server *http.Server
}

// NewServer 初始化 HTTP Server
//
// 參數:
//
//	logger: zap logger
//	addr: 監聽位址 (e.g. ":8080")
//	mode: gin 模式，"release" 關閉 debug 輸出
//	ledgerHandler: 帳本路由
func NewServer(logger *zap.Logger, addr, mode string, ledgerHandler *LedgerHandler) *Server {
	if mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(logger))

	v1 := r.Group("/api/v1")
	{
		ledgerHandler.RegisterRoutes(v1)

		// 健康檢查
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "UP"})
		})
	}

	return &Server{
		engine: r,
		logger: logger,
		addr:   addr,
		server: &http.Server{
			Addr:    addr,
			Handler: r,
		},
	}
}

// Handler 回傳 http.Handler (測試用)
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run 啟動服務，Shutdown 後回傳 nil
func (s *Server) Run() error {
	s.logger.Info("HTTP server started", zap.String("addr", s.addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 優雅停機
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
