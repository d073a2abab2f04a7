package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, id string, patch domain.TransactionPatch) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
	DeleteAllFunc        func(ctx context.Context, tx usecase.Transaction) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Transaction, error)
	ListAllFunc          func(ctx context.Context) ([]*domain.Transaction, error)
	ListByDateRangeFunc  func(ctx context.Context, start, end time.Time) ([]*domain.Transaction, error)
	TotalsByMonthFunc    func(ctx context.Context, year int) ([]usecase.MonthKindTotal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.transactions[t.ID] = &cp
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, id string, patch domain.TransactionPatch) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, id, patch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	updated := patch.ApplyTo(*t)
	m.transactions[id] = &updated
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) DeleteAll(ctx context.Context, tx usecase.Transaction) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = make(map[string]*domain.Transaction)
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	all, _ := m.ListAll(ctx)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockTransactionRepository) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	transactions := make([]*domain.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		cp := *t
		transactions = append(transactions, &cp)
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].OccurredAt.After(transactions[j].OccurredAt)
	})
	return transactions, nil
}

func (m *MockTransactionRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Transaction, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, start, end)
	}
	all, _ := m.ListAll(ctx)
	var transactions []*domain.Transaction
	for _, t := range all {
		if !t.OccurredAt.Before(start) && !t.OccurredAt.After(end) {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

func (m *MockTransactionRepository) TotalsByMonth(ctx context.Context, year int) ([]usecase.MonthKindTotal, error) {
	if m.TotalsByMonthFunc != nil {
		return m.TotalsByMonthFunc(ctx, year)
	}
	all, _ := m.ListAll(ctx)
	totals := make(map[int]map[domain.TransactionKind]decimal.Decimal)
	for _, t := range all {
		if t.OccurredAt.Year() != year {
			continue
		}
		month := int(t.OccurredAt.Month())
		if totals[month] == nil {
			totals[month] = make(map[domain.TransactionKind]decimal.Decimal)
		}
		totals[month][t.Kind] = totals[month][t.Kind].Add(t.Amount)
	}
	var rows []usecase.MonthKindTotal
	for month, kinds := range totals {
		for kind, total := range kinds {
			rows = append(rows, usecase.MonthKindTotal{Month: month, Kind: kind, Total: total})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Kind < rows[j].Kind
	})
	return rows, nil
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.BankAccount

	CreateFunc        func(ctx context.Context, account *domain.BankAccount) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.BankAccount, error)
	UpdateFunc        func(ctx context.Context, id string, patch domain.BankAccountPatch, updatedAt time.Time) (*domain.BankAccount, error)
	DeleteFunc        func(ctx context.Context, id string) error
	ListFunc          func(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error)
	AdjustBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
	ReplaceAllFunc    func(ctx context.Context, tx usecase.Transaction, accounts []*domain.BankAccount) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.BankAccount),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.BankAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) Update(ctx context.Context, id string, patch domain.BankAccountPatch, updatedAt time.Time) (*domain.BankAccount, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	updated := patch.ApplyTo(*a)
	updated.UpdatedAt = updatedAt
	m.accounts[id] = &updated
	return &updated, nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.BankAccount
	for _, a := range m.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	if m.AdjustBalanceFunc != nil {
		return m.AdjustBalanceFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	a.UpdatedAt = updatedAt
	return a.Balance, nil
}

func (m *MockAccountRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, accounts []*domain.BankAccount) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, tx, accounts)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = make(map[string]*domain.BankAccount)
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return nil
}

// MockCardRepository is a mock implementation of CardRepository.
type MockCardRepository struct {
	mu    sync.RWMutex
	cards map[string]*domain.CreditCard

	CreateFunc        func(ctx context.Context, card *domain.CreditCard) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.CreditCard, error)
	UpdateFunc        func(ctx context.Context, id string, patch domain.CreditCardPatch, updatedAt time.Time) (*domain.CreditCard, error)
	DeleteFunc        func(ctx context.Context, id string) error
	ListFunc          func(ctx context.Context, limit, offset int) ([]*domain.CreditCard, error)
	AdjustBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
	ReplaceAllFunc    func(ctx context.Context, tx usecase.Transaction, cards []*domain.CreditCard) error
}

func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{
		cards: make(map[string]*domain.CreditCard),
	}
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.CreditCard) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, card)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[card.ID] = card
	return nil
}

func (m *MockCardRepository) GetByID(ctx context.Context, id string) (*domain.CreditCard, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.cards[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCardNotFound
}

func (m *MockCardRepository) Update(ctx context.Context, id string, patch domain.CreditCardPatch, updatedAt time.Time) (*domain.CreditCard, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	updated := patch.ApplyTo(*c)
	updated.UpdatedAt = updatedAt
	m.cards[id] = &updated
	return &updated, nil
}

func (m *MockCardRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[id]; !ok {
		return domain.ErrCardNotFound
	}
	delete(m.cards, id)
	return nil
}

func (m *MockCardRepository) List(ctx context.Context, limit, offset int) ([]*domain.CreditCard, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var cards []*domain.CreditCard
	for _, c := range m.cards {
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

func (m *MockCardRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	if m.AdjustBalanceFunc != nil {
		return m.AdjustBalanceFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return decimal.Zero, domain.ErrCardNotFound
	}
	c.CreditBalance = c.CreditBalance.Add(delta)
	c.UpdatedAt = updatedAt
	return c.CreditBalance, nil
}

func (m *MockCardRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, cards []*domain.CreditCard) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, tx, cards)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = make(map[string]*domain.CreditCard)
	for _, c := range cards {
		m.cards[c.ID] = c
	}
	return nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository. It
// starts populated with the default categories.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[domain.TransactionKind][]string

	ListByKindFunc func(ctx context.Context, kind domain.TransactionKind) ([]string, error)
	ExistsFunc     func(ctx context.Context, kind domain.TransactionKind, name string) (bool, error)
	AddFunc        func(ctx context.Context, kind domain.TransactionKind, name string) error
	RemoveFunc     func(ctx context.Context, kind domain.TransactionKind, name string) error
	ReplaceAllFunc func(ctx context.Context, tx usecase.Transaction, categories map[domain.TransactionKind][]string) error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	categories := make(map[domain.TransactionKind][]string, len(domain.DefaultCategories))
	for kind, names := range domain.DefaultCategories {
		categories[kind] = append([]string(nil), names...)
	}
	return &MockCategoryRepository{categories: categories}
}

func (m *MockCategoryRepository) ListByKind(ctx context.Context, kind domain.TransactionKind) ([]string, error) {
	if m.ListByKindFunc != nil {
		return m.ListByKindFunc(ctx, kind)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.categories[kind]...), nil
}

func (m *MockCategoryRepository) Exists(ctx context.Context, kind domain.TransactionKind, name string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, kind, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.categories[kind] {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) Add(ctx context.Context, kind domain.TransactionKind, name string) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, kind, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[kind] = append(m.categories[kind], name)
	return nil
}

func (m *MockCategoryRepository) Remove(ctx context.Context, kind domain.TransactionKind, name string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, kind, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	names := m.categories[kind]
	for i, n := range names {
		if n == name {
			m.categories[kind] = append(names[:i], names[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, categories map[domain.TransactionKind][]string) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, tx, categories)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = make(map[domain.TransactionKind][]string, len(categories))
	for kind, names := range categories {
		m.categories[kind] = append([]string(nil), names...)
	}
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	ListFunc     func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.AuditLog
	for _, l := range m.logs {
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.MethodID != "" && l.MethodID != filter.MethodID {
			continue
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// Logs returns every recorded entry.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc            func(ctx context.Context, key string) ([]byte, error)
	SetFunc            func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc         func(ctx context.Context, keys ...string) error
	DeleteByPrefixFunc func(ctx context.Context, prefix string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, keys...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *MockCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if m.DeleteByPrefixFunc != nil {
		return m.DeleteByPrefixFunc(ctx, prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

// Contains reports whether a key is cached.
func (m *MockCache) Contains(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}
