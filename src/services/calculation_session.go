package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/processors"
	"github.com/username/honorarios/src/utils"
)

// CalculationSession holds one user's transactions, profile and role and the
// last computed results. It has no internal locking: callers that share a
// session across goroutines must serialize access (see SessionRegistry).
// Results are only refreshed by an explicit Recompute.
type CalculationSession struct {
	clock      processors.Clock
	years      EffectiveYearResolver
	filter     processors.TemporalFilter
	resolver   processors.TeamDistributionResolver
	aggregator processors.Aggregator

	transactions   []models.Transaction
	profile        *models.Profile
	role           models.Role
	results        models.CalculationResult
	isLoading      bool
	err            error
	lastCalculated time.Time
}

func NewCalculationSession(clock processors.Clock, years EffectiveYearResolver) *CalculationSession {
	if clock == nil {
		clock = processors.SystemClock
	}
	if years == nil {
		years = NewPinnedYearResolver(clock, nil)
	}
	fees := processors.NewFeeCalculator()
	filter := processors.NewTemporalFilter(clock)
	return &CalculationSession{
		clock:      clock,
		years:      years,
		filter:     filter,
		resolver:   processors.NewTeamDistributionResolver(fees),
		aggregator: processors.NewAggregator(fees, filter),
	}
}

// SetTransactions stores a copy of list without fallen transactions.
func (s *CalculationSession) SetTransactions(list []models.Transaction) {
	kept := make([]models.Transaction, 0, len(list))
	for _, tx := range list {
		if tx.Status == models.StatusFallen {
			continue
		}
		kept = append(kept, tx.Normalized())
	}
	s.transactions = kept
}

func (s *CalculationSession) SetProfile(p *models.Profile) {
	if p == nil {
		s.profile = nil
		return
	}
	cp := *p
	s.profile = &cp
}

func (s *CalculationSession) SetRole(r models.Role) { s.role = r }

func (s *CalculationSession) Transactions() []models.Transaction {
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *CalculationSession) Profile() *models.Profile { return s.profile }
func (s *CalculationSession) Role() models.Role { return s.role }
func (s *CalculationSession) Results() models.CalculationResult { return s.results }
func (s *CalculationSession) IsLoading() bool { return s.isLoading }
func (s *CalculationSession) Err() error { return s.err }
func (s *CalculationSession) LastCalculated() time.Time { return s.lastCalculated }

// Load replaces the transactions from source and recomputes. A source failure
// is kept in Err and leaves the previous transactions untouched.
func (s *CalculationSession) Load(ctx context.Context, source TransactionSource, userID string) error {
	s.isLoading = true
	s.err = nil
	defer func() { s.isLoading = false }()

	txs, err := source.ListTransactions(ctx, userID)
	if err != nil {
		s.err = fmt.Errorf("loading transactions for user %s: %w", userID, err)
		return s.err
	}
	s.SetTransactions(txs)
	s.Recompute()
	return nil
}

func (s *CalculationSession) resetResults() models.CalculationResult {
	now := s.clock.Now()
	s.results = models.CalculationResult{CalculatedAt: now}
	s.lastCalculated = now
	return s.results
}

// Recompute rebuilds the results bundle for the effective year. Transactions
// are partitioned with the temporal filter, so every open deal belongs to the
// effective year whatever its stored dates and the prior-year open bucket only
// fills if that resolution ever changes.
func (s *CalculationSession) Recompute() models.CalculationResult {
	if len(s.transactions) == 0 || s.profile == nil || s.role == "" {
		return s.resetResults()
	}

	year := s.years.EffectiveYear(s.profile.Email)
	var closedCurrent, openCurrent, openPrior []models.Transaction
	for _, tx := range s.transactions {
		y, ok := s.filter.YearOf(tx, year)
		if !ok {
			continue
		}
		switch {
		case y == year && tx.Status == models.StatusClosed:
			closedCurrent = append(closedCurrent, tx)
		case y == year && tx.Status == models.StatusOpen:
			openCurrent = append(openCurrent, tx)
		case y == year-1 && tx.Status == models.StatusOpen:
			openPrior = append(openPrior, tx)
		}
	}
	if len(closedCurrent) == 0 && len(openCurrent) == 0 && len(openPrior) == 0 {
		return s.resetResults()
	}

	grossOpen := s.aggregator.TotalBrokerFee(openCurrent, "")
	grossOpenPrior := s.aggregator.TotalBrokerFee(openPrior, "")
	now := s.clock.Now()
	s.results = models.CalculationResult{
		GrossClosedCurrentYear: s.aggregator.TotalBrokerFee(closedCurrent, ""),
		GrossOpenCurrentYear:   grossOpen,
		GrossOpenPriorYear:     grossOpenPrior,
		GrossOpenTotal:         utils.Sum(grossOpen, grossOpenPrior),
		NetClosed:              s.netTotal(closedCurrent),
		NetOpen:                s.netTotal(openCurrent),
		CalculatedAt:           now,
	}
	s.lastCalculated = now
	return s.results
}

// RecomputeWithFilters computes gross and net for an arbitrary year and status
// without touching the stored results. A year that is not a number means every
// year; status "all" means anything but fallen.
func (s *CalculationSession) RecomputeWithFilters(year, status string) models.FilteredFees {
	if len(s.transactions) == 0 || s.profile == nil || s.role == "" {
		return models.FilteredFees{}
	}
	wantYear, yearErr := strconv.Atoi(strings.TrimSpace(year))
	wantStatus, ok := models.ParseStatus(status)
	if !ok {
		return models.FilteredFees{}
	}

	var selected []models.Transaction
	for _, tx := range s.transactions {
		if yearErr == nil {
			y, ok := storedYear(tx)
			if !ok || y != wantYear {
				continue
			}
		}
		if wantStatus == models.StatusAll {
			if tx.Status == models.StatusFallen {
				continue
			}
		} else if tx.Status != wantStatus {
			continue
		}
		selected = append(selected, tx)
	}
	return models.FilteredFees{
		Gross: s.aggregator.TotalBrokerFee(selected, ""),
		Net:   s.netTotal(selected),
	}
}

// Reset returns the session to its freshly constructed state.
func (s *CalculationSession) Reset() {
	s.transactions = nil
	s.profile = nil
	s.role = ""
	s.results = models.CalculationResult{}
	s.isLoading = false
	s.err = nil
	s.lastCalculated = time.Time{}
}

func (s *CalculationSession) netTotal(txs []models.Transaction) float64 {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(utils.Dec(s.resolver.TeamLeaderRetainedFee(tx, s.role, s.profile)))
	}
	return total.InexactFloat64()
}

// storedYear reads the year from the transaction or reservation date, ignoring status.
func storedYear(tx models.Transaction) (int, bool) {
	raw := tx.TransactionDate
	if strings.TrimSpace(raw) == "" {
		raw = tx.ReservationDate
	}
	d, ok := utils.ParseDate(raw)
	if !ok {
		return 0, false
	}
	return d.Year(), true
}
