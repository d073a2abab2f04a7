package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// TransactionResponse represents a transaction in API responses. The
// payment method fields are denormalized from whichever table the
// reference points at.
type TransactionResponse struct {
	ID                  string          `json:"id"`
	OccurredAt          time.Time       `json:"occurred_at"`
	Amount              decimal.Decimal `json:"amount"`
	Kind                string          `json:"kind"`
	Category            string          `json:"category"`
	Note                string          `json:"note,omitempty"`
	PaymentMethodID     string          `json:"payment_method_id"`
	PaymentMethodIsCard bool            `json:"payment_method_is_card"`
	PaymentMethodName   string          `json:"payment_method_name,omitempty"`
	PaymentMethodNumber string          `json:"payment_method_number,omitempty"`
	BankName            string          `json:"bank_name,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                  t.ID,
		OccurredAt:          t.OccurredAt,
		Amount:              t.Amount,
		Kind:                string(t.Kind),
		Category:            t.Category,
		Note:                t.Note,
		PaymentMethodID:     t.PaymentMethod.ID,
		PaymentMethodIsCard: t.PaymentMethod.IsCard,
		PaymentMethodName:   t.PaymentMethodName,
		PaymentMethodNumber: t.PaymentMethodNumber,
		BankName:            t.BankName,
		CreatedAt:           t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction page.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// AccountResponse represents a bank account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	AccountNumber  string          `json:"account_number"`
	BankName       string          `json:"bank_name"`
	Type           string          `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.BankAccount) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		AccountNumber:  a.AccountNumber,
		BankName:       a.BankName,
		Type:           string(a.Type),
		Balance:        a.Balance,
		InitialBalance: a.InitialBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.BankAccount) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account page.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// CardResponse represents a credit card in API responses.
type CardResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CardNumber     string          `json:"card_number"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CreditBalance  decimal.Decimal `json:"credit_balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CardFromDomain converts a domain card to a response.
func CardFromDomain(c *domain.CreditCard) *CardResponse {
	return &CardResponse{
		ID:             c.ID,
		Name:           c.Name,
		CardNumber:     c.CardNumber,
		CreditLimit:    c.CreditLimit,
		CreditBalance:  c.CreditBalance,
		InitialBalance: c.InitialBalance,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// CardsFromDomain converts domain cards to responses.
func CardsFromDomain(cards []*domain.CreditCard) []*CardResponse {
	result := make([]*CardResponse, len(cards))
	for i, c := range cards {
		result[i] = CardFromDomain(c)
	}
	return result
}

// ListCardsResponse wraps a card page.
type ListCardsResponse struct {
	Cards []*CardResponse `json:"cards"`
	Total int64           `json:"total"`
}

// CategoriesResponse lists the registered category names for one kind.
type CategoriesResponse struct {
	Kind       string   `json:"kind"`
	Categories []string `json:"categories"`
}

// MonthlyStatsResponse represents one calendar month of the ledger.
type MonthlyStatsResponse struct {
	Year         int                    `json:"year"`
	Month        int                    `json:"month"`
	Income       decimal.Decimal        `json:"income"`
	Expense      decimal.Decimal        `json:"expense"`
	Balance      decimal.Decimal        `json:"balance"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// MonthlyStatsFromDomain converts a domain summary to a response.
func MonthlyStatsFromDomain(year, month int, s *domain.MonthlySummary) *MonthlyStatsResponse {
	return &MonthlyStatsResponse{
		Year:         year,
		Month:        month,
		Income:       s.Income,
		Expense:      s.Expense,
		Balance:      s.Balance,
		Transactions: TransactionsFromDomain(s.Transactions),
	}
}

// MonthDataResponse is one month bucket of a yearly summary. Month is
// 1-based on the wire.
type MonthDataResponse struct {
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// YearlyStatsResponse represents twelve month buckets of one year.
type YearlyStatsResponse struct {
	Year   int                 `json:"year"`
	Months []MonthDataResponse `json:"months"`
}

// YearlyStatsFromDomain converts the zero-based month buckets to the
// 1-based wire form.
func YearlyStatsFromDomain(year int, months []domain.MonthData) *YearlyStatsResponse {
	result := &YearlyStatsResponse{
		Year:   year,
		Months: make([]MonthDataResponse, len(months)),
	}
	for i, m := range months {
		result.Months[i] = MonthDataResponse{
			Month:   m.Month + 1,
			Income:  m.Income,
			Expense: m.Expense,
			Balance: m.Balance,
		}
	}

	return result
}

// MethodReportResponse is the reconciliation outcome for one payment method.
type MethodReportResponse struct {
	MethodID        string `json:"method_id"`
	Name            string `json:"name"`
	IsCard          bool   `json:"is_card"`
	RecordedBalance string `json:"recorded_balance"`
	ExpectedBalance string `json:"expected_balance"`
	Difference      string `json:"difference"`
	Consistent      bool   `json:"consistent"`
}

// ReconciliationResponse is the outcome of a full ledger check.
type ReconciliationResponse struct {
	CheckedAt     time.Time              `json:"checked_at"`
	Methods       []MethodReportResponse `json:"methods"`
	Discrepancies int                    `json:"discrepancies"`
}

// ReconciliationFromUseCase converts a reconciliation report to a response.
func ReconciliationFromUseCase(r *usecase.ReconciliationReport) *ReconciliationResponse {
	resp := &ReconciliationResponse{
		CheckedAt:     r.CheckedAt,
		Methods:       make([]MethodReportResponse, len(r.Methods)),
		Discrepancies: r.Discrepancies,
	}
	for i, m := range r.Methods {
		resp.Methods[i] = MethodReportResponse{
			MethodID:        m.MethodID,
			Name:            m.Name,
			IsCard:          m.IsCard,
			RecordedBalance: m.RecordedBalance,
			ExpectedBalance: m.ExpectedBalance,
			Difference:      m.Difference,
			Consistent:      m.Consistent,
		}
	}

	return resp
}

// AuditLogResponse represents an audit trail entry in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	Action       string      `json:"action"`
	MethodID     string      `json:"method_id"`
	IsCard       bool        `json:"is_card"`
	Delta        string      `json:"delta"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			Action:       l.Action,
			MethodID:     l.MethodID,
			IsCard:       l.IsCard,
			Delta:        l.Delta,
			BeforeState:  l.BeforeState,
			AfterState:   l.AfterState,
			Status:       l.Status,
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// ImportResultResponse reports what a backup restore brought in.
type ImportResultResponse struct {
	Transactions int `json:"transactions"`
	BankAccounts int `json:"bank_accounts"`
	CreditCards  int `json:"credit_cards"`
}

// ImportResultFromUseCase converts an import result to a response.
func ImportResultFromUseCase(r *usecase.ImportResult) *ImportResultResponse {
	return &ImportResultResponse{
		Transactions: r.Transactions,
		BankAccounts: r.BankAccounts,
		CreditCards:  r.CreditCards,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
