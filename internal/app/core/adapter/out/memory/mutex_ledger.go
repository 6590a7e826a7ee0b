package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-daily-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-daily-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-daily-ledger/pkg/wal"
)

// walRecord 寫入 WAL 的交易格式
type walRecord struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
	BusinessDate  civil.Date      `json:"business_date"`
	RecordedAt    time.Time       `json:"recorded_at"`
}

// accountDay 帳戶 + 營業日，用於查詢索引
type accountDay struct {
	AccountID    string
	BusinessDate civil.Date
}

// balanceCell 單一 BalanceKey 的餘額，mu 序列化同一把鍵的入帳
// balance 在第一筆交易累加前為 nil
type balanceCell struct {
	mu      sync.Mutex
	balance *domain.DailyBalance
}

// fold 累加一筆交易，呼叫端需持有 c.mu
func (c *balanceCell) fold(tran *domain.Transaction) {
	if c.balance == nil {
		key := tran.BalanceKey()
		c.balance = &domain.DailyBalance{
			AccountID:    key.AccountID,
			Currency:     key.Currency,
			BusinessDate: key.BusinessDate,
			Balance:      tran.Amount,
			UpdatedAt:    tran.RecordedAt,
		}
		return
	}
	c.balance.Balance = c.balance.Balance.Add(tran.Amount)
	c.balance.UpdatedAt = tran.RecordedAt
}

// MutexLedger 是一個使用 Mutex 實現的記憶體帳本
//
// 結構:
//
//	idMu: 保護 transactions 與 pending，同一個交易 ID 同時只有一筆在入帳
//	transactions: 已接受的交易 (以交易 ID 為主鍵)
//	pending: 正在入帳的交易 ID，結束時關閉 channel
//	keyMu: 保護 balances 與 currencies 的結構，餘額數值由各 cell 自己的鎖保護
//	balances: 日餘額 (以 BalanceKey 為主鍵)，不同鍵的入帳互不阻塞
//	currencies: accountDay -> 已有餘額的幣別
//	wal: Write-Ahead Log 實例 (可為 nil)
type MutexLedger struct {
	idMu         sync.Mutex
	transactions map[uuid.UUID]*domain.Transaction
	pending      map[uuid.UUID]chan struct{}

	keyMu      sync.RWMutex
	balances   map[domain.BalanceKey]*balanceCell
	currencies map[accountDay][]string
	// Write-Ahead Logging
	wal *wal.WAL
	now func() time.Time
}

// NewMutexLedger 建立一個新的 MutexLedger 實例
//
// 參數:
//
//	wal: Write-Ahead Log 實例，nil 表示不持久化
//
// 回傳:
//
//	*MutexLedger: MutexLedger 實例
//	error: 初始化錯誤 (如 WAL 恢復失敗)
func NewMutexLedger(wal *wal.WAL) (*MutexLedger, error) {
	ledger := &MutexLedger{
		transactions: make(map[uuid.UUID]*domain.Transaction),
		pending:      make(map[uuid.UUID]chan struct{}),
		balances:     make(map[domain.BalanceKey]*balanceCell),
		currencies:   make(map[accountDay][]string),
		wal:          wal,
		now:          func() time.Time { return time.Now().UTC() },
	}
	if err := ledger.recoverFromWAL(); err != nil {
		return nil, err
	}
	return ledger, nil
}

// recoverFromWAL 從 WAL 檔案恢復帳本狀態
func (m *MutexLedger) recoverFromWAL() error {
	if m.wal == nil {
		return nil
	}
	return m.wal.ReadAll(func(jsonRaw []byte) error {
		var rec walRecord
		if err := json.Unmarshal(jsonRaw, &rec); err != nil {
			return err
		}
		// 只有 NewMutexLedger 呼叫 (單執行緒)
		m.apply(&domain.Transaction{
			TransactionID: rec.TransactionID,
			AccountID:     rec.AccountID,
			Currency:      rec.Currency,
			Amount:        rec.Amount,
			OccurredAt:    rec.OccurredAt,
			BusinessDate:  rec.BusinessDate,
			RecordedAt:    rec.RecordedAt,
		})
		return nil
	})
}

// PostTransaction 寫入交易並累加日餘額
// 同一把鍵的入帳由該鍵的 cell 鎖序列化，同一個交易 ID 的入帳由 pending 序列化
//
// 參數:
//
//	ctx: 上下文
//	tran: 交易物件
//
// 回傳:
//
//	domain.PostStatus: Created 或 Duplicate
//	error: 包裝 domain.ErrWALWriteFailed 的 WAL 錯誤
func (m *MutexLedger) PostTransaction(ctx context.Context, tran *domain.Transaction) (domain.PostStatus, error) {
	done, err := m.reserve(ctx, tran.TransactionID)
	if err != nil {
		return 0, err
	}
	if done == nil {
		return domain.PostStatusDuplicate, nil
	}

	accepted := *tran
	accepted.RecordedAt = m.now()

	cell := m.cell(accepted.BalanceKey())
	cell.mu.Lock()
	// 1. 寫入 WAL (Critical Path)，失敗則記憶體狀態不變
	err = m.appendWAL(&accepted)
	if err == nil {
		// 2. 累加餘額
		cell.fold(&accepted)
	}
	cell.mu.Unlock()

	// 3. 登記交易並放行同 ID 的等待者
	m.idMu.Lock()
	delete(m.pending, accepted.TransactionID)
	if err == nil {
		m.transactions[accepted.TransactionID] = &accepted
	}
	m.idMu.Unlock()
	close(done)

	if err != nil {
		return 0, err
	}
	return domain.PostStatusCreated, nil
}

// reserve 佔用交易 ID，同 ID 正在入帳時等待其結束後重新判斷
//
// 回傳:
//
//	chan struct{}: 佔用成功，入帳結束後由呼叫端關閉；nil 表示交易已存在
//	error: ctx 取消
func (m *MutexLedger) reserve(ctx context.Context, id uuid.UUID) (chan struct{}, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m.idMu.Lock()
		if _, ok := m.transactions[id]; ok {
			m.idMu.Unlock()
			return nil, nil
		}
		inflight, ok := m.pending[id]
		if !ok {
			done := make(chan struct{})
			m.pending[id] = done
			m.idMu.Unlock()
			return done, nil
		}
		m.idMu.Unlock()

		select {
		case <-inflight:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// appendWAL 寫入並刷出一筆交易
func (m *MutexLedger) appendWAL(tran *domain.Transaction) error {
	if m.wal == nil {
		return nil
	}
	if err := m.wal.Write(toWALRecord(tran)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWALWriteFailed, err)
	}
	if err := m.wal.Flush(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWALWriteFailed, err)
	}
	return nil
}

// cell 取得 key 對應的 balanceCell，不存在時建立並登記幣別索引
func (m *MutexLedger) cell(key domain.BalanceKey) *balanceCell {
	m.keyMu.RLock()
	c, ok := m.balances[key]
	m.keyMu.RUnlock()
	if ok {
		return c
	}

	m.keyMu.Lock()
	defer m.keyMu.Unlock()
	if c, ok := m.balances[key]; ok {
		return c
	}
	c = &balanceCell{}
	m.balances[key] = c
	day := accountDay{AccountID: key.AccountID, BusinessDate: key.BusinessDate}
	currencies := append(m.currencies[day], key.Currency)
	slices.Sort(currencies)
	m.currencies[day] = currencies
	return c
}

// apply 重播 WAL 時將交易寫入記憶體並累加餘額
func (m *MutexLedger) apply(tran *domain.Transaction) {
	if _, ok := m.transactions[tran.TransactionID]; ok {
		return
	}
	m.transactions[tran.TransactionID] = tran
	m.cell(tran.BalanceKey()).fold(tran)
}

// TransactionAmount 取得已存交易的金額
func (m *MutexLedger) TransactionAmount(ctx context.Context, id uuid.UUID) (decimal.NullDecimal, error) {
	m.idMu.Lock()
	defer m.idMu.Unlock()
	tran, ok := m.transactions[id]
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	return decimal.NewNullDecimal(tran.Amount), nil
}

// DailyBalances 取得帳戶某營業日的所有幣別餘額 (依幣別排序)
func (m *MutexLedger) DailyBalances(ctx context.Context, accountID string, date civil.Date) ([]domain.DailyBalance, error) {
	m.keyMu.RLock()
	currencies := m.currencies[accountDay{AccountID: accountID, BusinessDate: date}]
	cells := make([]*balanceCell, 0, len(currencies))
	for _, currency := range currencies {
		cells = append(cells, m.balances[domain.BalanceKey{AccountID: accountID, Currency: currency, BusinessDate: date}])
	}
	m.keyMu.RUnlock()

	result := make([]domain.DailyBalance, 0, len(cells))
	for _, c := range cells {
		c.mu.Lock()
		// WAL 寫入失敗的鍵只有空的 cell
		if c.balance != nil {
			result = append(result, *c.balance)
		}
		c.mu.Unlock()
	}
	return result, nil
}

func toWALRecord(tran *domain.Transaction) walRecord {
	return walRecord{
		TransactionID: tran.TransactionID,
		AccountID:     tran.AccountID,
		Currency:      tran.Currency,
		Amount:        tran.Amount,
		OccurredAt:    tran.OccurredAt,
		BusinessDate:  tran.BusinessDate,
		RecordedAt:    tran.RecordedAt,
	}
}

var _ usecase.Ledger = (*MutexLedger)(nil)
