package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Backup is the snapshot format used by export and import. The JSON field
// names are wire-compatible with backups produced by earlier versions of
// the app, so existing backup files keep restoring.
type Backup struct {
	Transactions []BackupTransaction          `json:"transactions"`
	Categories   map[TransactionKind][]string `json:"categories"`
	BankAccounts []BankAccountSnapshot        `json:"bankAccounts,omitempty"`
	CreditCards  []CreditCardSnapshot         `json:"creditCards,omitempty"`
	ExportDate   time.Time                    `json:"exportDate"`
}

// BackupTransaction is a transaction as serialized in a backup, with the
// payment method denormalized the way reads return it.
type BackupTransaction struct {
	ID            string              `json:"id"`
	Date          time.Time           `json:"date"`
	Amount        decimal.Decimal     `json:"amount"`
	Kind          TransactionKind     `json:"type"`
	Category      string              `json:"category"`
	Note          string              `json:"note,omitempty"`
	PaymentMethod BackupPaymentMethod `json:"paymentMethod"`
}

// BackupPaymentMethod is the denormalized payment method inside a backup.
type BackupPaymentMethod struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	IsCard        bool   `json:"isCard"`
	CardNumber    string `json:"cardNumber,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	BankName      string `json:"bankName,omitempty"`
}

// BankAccountSnapshot is a bank account as serialized in a backup.
type BankAccountSnapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
	Balance       decimal.Decimal `json:"balance"`
	Type          AccountType     `json:"type"`
}

// CreditCardSnapshot is a credit card as serialized in a backup.
type CreditCardSnapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CardNumber    string          `json:"cardNumber"`
	CreditLimit   decimal.Decimal `json:"creditLimit"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}
