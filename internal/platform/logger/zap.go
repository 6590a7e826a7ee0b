package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const ModeDebug = "debug"

// NewLogger 初始化 Zap Logger
// debug 模式輸出彩色 console，其餘輸出 JSON
func NewLogger(mode string) (*zap.Logger, error) {
	var config zap.Config

	if mode == ModeDebug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	return config.Build()
}
