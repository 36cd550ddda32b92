// internal/domain/report/service.go
package report

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultLedgerPageSize mirrors what the ledger screen requests
const DefaultLedgerPageSize = 50

// Remote is the reporting side of the bookkeeping API
type Remote interface {
	ProfitLoss(ctx context.Context) (*ProfitLoss, error)
	BalanceSheet(ctx context.Context) (*BalanceSheet, error)
	Accounts(ctx context.Context) ([]Account, error)
	Ledger(ctx context.Context, perPage int) ([]LedgerEntry, error)
}

// Service exposes financial reports
type Service struct {
	remote Remote
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a new report service
func NewService(remote Remote, log logrus.FieldLogger) *Service {
	return &Service{
		remote: remote,
		log:    log.WithField("component", "report"),
		now:    time.Now,
	}
}

// ProfitLoss returns the income statement
func (s *Service) ProfitLoss(ctx context.Context) (*ProfitLoss, error) {
	return s.remote.ProfitLoss(ctx)
}

// BalanceSheet returns the balance sheet
func (s *Service) BalanceSheet(ctx context.Context) (*BalanceSheet, error) {
	return s.remote.BalanceSheet(ctx)
}

// Accounts returns the chart of accounts
func (s *Service) Accounts(ctx context.Context) ([]Account, error) {
	return s.remote.Accounts(ctx)
}

// Ledger returns the most recent ledger lines
func (s *Service) Ledger(ctx context.Context, perPage int) ([]LedgerEntry, error) {
	if perPage <= 0 || perPage > 500 {
		perPage = DefaultLedgerPageSize
	}
	return s.remote.Ledger(ctx, perPage)
}

// Summary fetches both statements concurrently
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		pl *ProfitLoss
		bs *BalanceSheet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pl, err = s.remote.ProfitLoss(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bs, err = s.remote.BalanceSheet(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		ProfitLoss:    *pl,
		BalanceSheet:  *bs,
		MarginPercent: pl.Margin(),
		Balanced:      bs.Balanced(),
		GeneratedAt:   s.now().UTC(),
	}
	if !summary.Balanced {
		s.log.WithFields(logrus.Fields{
			"assets":      bs.Assets.String(),
			"liabilities": bs.Liabilities.String(),
			"equity":      bs.Equity.String(),
		}).Warn("Balance sheet does not balance")
	}
	return summary, nil
}
