package wal

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID     int    `json:"id"`
	Amount string `json:"amount"`
}

func TestWAL_WriteFlushReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal.log")

	w, err := NewWAL(path)
	require.NoError(t, err)

	require.NoError(t, w.Write(record{ID: 1, Amount: "100.00"}))
	require.NoError(t, w.Write(record{ID: 2, Amount: "-5.5"}))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	reopened, err := NewWAL(path)
	require.NoError(t, err)
	defer reopened.Close()

	var got []record
	err = reopened.ReadAll(func(raw []byte) error {
		var r record
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 1, Amount: "100.00"}, {ID: 2, Amount: "-5.5"}}, got)

	// 重新開啟後追加寫入不會覆蓋舊資料
	require.NoError(t, reopened.Write(record{ID: 3, Amount: "1"}))
	require.NoError(t, reopened.Flush())

	count := 0
	require.NoError(t, reopened.ReadAll(func([]byte) error { count++; return nil }))
	assert.Equal(t, 3, count)
}

func TestWAL_ReadAllSeesBufferedWrites(t *testing.T) {
	w, err := NewWAL(filepath.Join(t.TempDir(), "wal.log"))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Write(record{ID: 7}))

	count := 0
	require.NoError(t, w.ReadAll(func([]byte) error { count++; return nil }))
	assert.Equal(t, 1, count)
}

func TestWAL_ReadAllCallbackError(t *testing.T) {
	w, err := NewWAL(filepath.Join(t.TempDir(), "wal.log"))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Write(record{ID: 1}))
	require.NoError(t, w.Write(record{ID: 2}))

	stop := errors.New("stop")
	calls := 0
	err = w.ReadAll(func([]byte) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestWAL_EmptyFile(t *testing.T) {
	w, err := NewWAL(filepath.Join(t.TempDir(), "wal.log"))
	require.NoError(t, err)
	defer w.Close()

	called := false
	require.NoError(t, w.ReadAll(func([]byte) error { called = true; return nil }))
	assert.False(t, called)
}

func TestWAL_ReadAllTruncatesTornTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal.log")

	w, err := NewWAL(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(record{ID: 1, Amount: "10"}))
	require.NoError(t, w.Close())
	intact, err := os.ReadFile(path)
	require.NoError(t, err)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString(`{"id":2,"amo`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := NewWAL(path)
	require.NoError(t, err)
	defer reopened.Close()

	var got []record
	err = reopened.ReadAll(func(raw []byte) error {
		var r record
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 1, Amount: "10"}}, got)

	// 檔案回到最後一筆完整紀錄，之後的寫入另起一行
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, intact, onDisk)

	require.NoError(t, reopened.Write(record{ID: 3, Amount: "1"}))
	require.NoError(t, reopened.Flush())
	count := 0
	require.NoError(t, reopened.ReadAll(func([]byte) error { count++; return nil }))
	assert.Equal(t, 2, count)
}

func TestWAL_ReadAllCorruptedMiddleRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal.log")
	content := "{\"id\":1}\n{\"id\":2,\"amo\n{\"id\":3}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), FileModePrivate))

	w, err := NewWAL(path)
	require.NoError(t, err)
	defer w.Close()

	calls := 0
	err = w.ReadAll(func([]byte) error { calls++; return nil })
	assert.ErrorIs(t, err, ErrCorrupted)
	assert.Equal(t, 1, calls)

	// 中段損壞不截斷檔案
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(onDisk))
}
