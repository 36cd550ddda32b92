// internal/domain/report/entity.go
package report

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// AccountType is the class of a ledger account
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// ProfitLoss is the income statement
type ProfitLoss struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetProfit decimal.Decimal `json:"net_profit"`
	Breakdown []DailyFigure   `json:"breakdown"`
}

// DailyFigure is one point of the P&L breakdown
type DailyFigure struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Expense decimal.Decimal `json:"expense"`
}

// Margin returns net profit as a percentage of revenue, rounded to 2 places
func (p ProfitLoss) Margin() decimal.Decimal {
	if p.Revenue.IsZero() {
		return decimal.Zero
	}
	return p.NetProfit.Div(p.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
}

// BalanceSheet is the statement of financial position
type BalanceSheet struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
}

// Balanced reports whether assets equal liabilities plus equity
func (b BalanceSheet) Balanced() bool {
	return b.Assets.Equal(b.Liabilities.Add(b.Equity))
}

// Account is an entry of the chart of accounts
type Account struct {
	ID   types.ID    `json:"id" validate:"required"`
	Code string      `json:"code"`
	Name string      `json:"name" validate:"required"`
	Type AccountType `json:"type"`
}

// LedgerEntry is one line of the general ledger
type LedgerEntry struct {
	ID           types.ID        `json:"id" validate:"required"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Account      AccountRef      `json:"account"`
	JournalEntry JournalRef      `json:"journal_entry"`
}

// AccountRef is the account embedded in a ledger entry
type AccountRef struct {
	Name string `json:"name"`
}

// JournalRef is the journal entry a ledger line belongs to
type JournalRef struct {
	Date            string `json:"date"`
	ReferenceNumber string `json:"reference_number"`
	Description     string `json:"description"`
}

// Summary is the dashboard view combining both statements
type Summary struct {
	ProfitLoss    ProfitLoss      `json:"profit_loss"`
	BalanceSheet  BalanceSheet    `json:"balance_sheet"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	Balanced      bool            `json:"balanced"`
	GeneratedAt   time.Time       `json:"generated_at"`
}
