package wal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
)

// 自己定義常用的權限常量
const (
	// rw-r--r-- (擁有者讀寫，其他人唯讀)
	FileModeReadOnly fs.FileMode = 0644

	// rw------- (只有擁有者可讀寫)
	FileModePrivate fs.FileMode = 0600
)

// ErrCorrupted 檔案中段有無法解析的資料 (不是寫到一半的最後一筆)
var ErrCorrupted = errors.New("wal: corrupted record")

// WAL 以 JSON Lines 格式追加寫入的 Write-Ahead Log
// Write 只寫進緩衝區，Flush 之後才保證落盤
type WAL struct {
	file   *os.File
	buf    *bufio.Writer
	mu     sync.Mutex
	logger *zap.Logger
}

// Option 定義了 WAL 的配置選項函數
type Option func(*WAL)

// WithLogger 設定截斷殘缺紀錄時使用的 logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *WAL) {
		w.logger = logger
	}
}

// NewWAL 開啟或建立一個 WAL 檔案
// O_RDWR讀寫模式
// O_APPEND 每次寫入時自動跳到文件末尾
// O_CREATE 如果文件不存在則建立
func NewWAL(path string, opts ...Option) (*WAL, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, FileModePrivate)
	if err != nil {
		return nil, err
	}
	w := &WAL{
		file:   file,
		buf:    bufio.NewWriter(file),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Write 寫入一筆資料 (緩衝區)
func (w *WAL) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return json.NewEncoder(w.buf).Encode(v)
}

// Flush 把緩衝區寫入檔案並強制刷入硬碟
func (w *WAL) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.buf.Flush(); err != nil {
		return err
	}
	return w.file.Sync()
}

// Close 刷出剩餘資料後關閉檔案
func (w *WAL) Close() error {
	if err := w.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// ReadAll 從頭讀取所有資料
// callback 逐筆接收原始 JSON，避免一次將所有資料載入記憶體
//
// 最後一筆若只寫了一半 (寫入途中崩潰)，視為未發生：
// 檔案截斷回最後一筆完整紀錄並回傳 nil。
// 殘缺資料之後還有其他行時回傳 ErrCorrupted。
func (w *WAL) ReadAll(callback func(jsonRaw []byte) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	// 尚未刷出的資料也要讀得到
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	decoder := json.NewDecoder(w.file)
	var complete int64
	for {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return w.truncateTornTail(complete, err)
		}
		complete = decoder.InputOffset()
		if err := callback(raw); err != nil {
			return err
		}
	}
}

// truncateTornTail 把 offset 之後的殘缺紀錄截掉，呼叫端需持有鎖
func (w *WAL) truncateTornTail(offset int64, decodeErr error) error {
	if _, err := w.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	rest, err := io.ReadAll(w.file)
	if err != nil {
		return err
	}

	// 保留上一筆紀錄的換行
	tail := bytes.TrimLeft(rest, " \t\r\n")
	cut := offset + int64(len(rest)-len(tail))
	if bytes.IndexByte(tail, '\n') >= 0 {
		return fmt.Errorf("%w at offset %d: %w", ErrCorrupted, cut, decodeErr)
	}

	if err := w.file.Truncate(cut); err != nil {
		return err
	}
	if err := w.file.Sync(); err != nil {
		return err
	}
	w.logger.Warn("wal: truncated torn record",
		zap.Int64("offset", cut),
		zap.Int("bytes", len(tail)),
		zap.Error(decodeErr),
	)
	return nil
}
