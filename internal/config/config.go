package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/go-daily-ledger/pkg/database"
)

const (
	StoreSQL    = "sql"
	StoreMemory = "memory"

	// 環境變數前綴，例如 LEDGER_DATABASE_HOST
	EnvPrefix = "LEDGER"
)

type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Store    StoreConfig     `yaml:"store"`
	Database database.Config `yaml:"database"`
}

type ServerConfig struct {
	Mode            string        `yaml:"mode"` // "debug" 或 "release"
	HTTPAddr        string        `yaml:"http_addr"`
	GRPCAddr        string        `yaml:"grpc_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig 帳本儲存方式
type StoreConfig struct {
	Type        string `yaml:"type"`         // "sql" 或 "memory"
	WALPath     string `yaml:"wal_path"`     // memory 使用，空字串表示不持久化
	AutoMigrate bool   `yaml:"auto_migrate"` // sql 使用，啟動時執行 migration
}

// Default 回傳預設配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Mode:            "release",
			HTTPAddr:        ":8080",
			GRPCAddr:        ":50051",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Type:        StoreSQL,
			WALPath:     "wal.log",
			AutoMigrate: true,
		},
		Database: database.Config{
			Driver:   database.DriverPostgres,
			Host:     "localhost",
			User:     "ledger",
			DBName:   "ledger",
			LogLevel: "error",
		},
	}
}

// Load 讀取 YAML 設定檔並套用 LEDGER_* 環境變數
//
// 參數:
//
//	path: 設定檔路徑，檔案不存在時只使用預設值與環境變數
//
// 回傳:
//
//	*Config: 已補全預設值並驗證過的配置
//	error: 檔案格式錯誤或驗證失敗
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// 沒有設定檔，沿用預設值
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	cfg.Database.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envOverrides 設定 key -> 套用函數，key 對應環境變數 LEDGER_<KEY>
var envOverrides = map[string]func(v *viper.Viper, key string, cfg *Config){
	"server.mode":              func(v *viper.Viper, k string, c *Config) { c.Server.Mode = v.GetString(k) },
	"server.http_addr":         func(v *viper.Viper, k string, c *Config) { c.Server.HTTPAddr = v.GetString(k) },
	"server.grpc_addr":         func(v *viper.Viper, k string, c *Config) { c.Server.GRPCAddr = v.GetString(k) },
	"server.shutdown_timeout":  func(v *viper.Viper, k string, c *Config) { c.Server.ShutdownTimeout = v.GetDuration(k) },
	"store.type":               func(v *viper.Viper, k string, c *Config) { c.Store.Type = v.GetString(k) },
	"store.wal_path":           func(v *viper.Viper, k string, c *Config) { c.Store.WALPath = v.GetString(k) },
	"store.auto_migrate":       func(v *viper.Viper, k string, c *Config) { c.Store.AutoMigrate = v.GetBool(k) },
	"database.driver":          func(v *viper.Viper, k string, c *Config) { c.Database.Driver = v.GetString(k) },
	"database.host":            func(v *viper.Viper, k string, c *Config) { c.Database.Host = v.GetString(k) },
	"database.port":            func(v *viper.Viper, k string, c *Config) { c.Database.Port = v.GetInt(k) },
	"database.user":            func(v *viper.Viper, k string, c *Config) { c.Database.User = v.GetString(k) },
	"database.password":        func(v *viper.Viper, k string, c *Config) { c.Database.Password = v.GetString(k) },
	"database.dbname":          func(v *viper.Viper, k string, c *Config) { c.Database.DBName = v.GetString(k) },
	"database.sslmode":         func(v *viper.Viper, k string, c *Config) { c.Database.SSLMode = v.GetString(k) },
	"database.max_open_conns":  func(v *viper.Viper, k string, c *Config) { c.Database.MaxOpenConns = v.GetInt(k) },
	"database.max_idle_conns":  func(v *viper.Viper, k string, c *Config) { c.Database.MaxIdleConns = v.GetInt(k) },
	"database.connect_retries": func(v *viper.Viper, k string, c *Config) { c.Database.ConnectRetries = v.GetInt(k) },
	"database.log_level":       func(v *viper.Viper, k string, c *Config) { c.Database.LogLevel = v.GetString(k) },
}

// applyEnv 只覆蓋有設定的環境變數
func applyEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, apply := range envOverrides {
		if v.IsSet(key) {
			apply(v, key, cfg)
		}
	}
}

// Validate 檢查配置是否可用
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return errors.New("server.http_addr is required")
	}
	if c.Server.GRPCAddr == "" {
		return errors.New("server.grpc_addr is required")
	}

	switch c.Store.Type {
	case StoreMemory:
		return nil
	case StoreSQL:
	default:
		return fmt.Errorf("unsupported store type %q (want %q or %q)", c.Store.Type, StoreSQL, StoreMemory)
	}

	switch c.Database.Driver {
	case database.DriverPostgres, database.DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database.port %d", c.Database.Port)
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}
