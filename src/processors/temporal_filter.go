package processors

import (
	"strconv"
	"strings"
	"time"

	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/utils"
)

const filterAll = "all"

type temporalFilterImpl struct {
	clock Clock
}

func NewTemporalFilter(clock Clock) TemporalFilter {
	if clock == nil {
		clock = SystemClock
	}
	return &temporalFilterImpl{clock: clock}
}

// effectiveDate is the transaction date, falling back to reservation and then listing.
func effectiveDate(tx models.Transaction) (time.Time, bool) {
	for _, raw := range []string{tx.TransactionDate, tx.ReservationDate, tx.ListingDate} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		return utils.ParseDate(raw)
	}
	return time.Time{}, false
}

// YearMonth resolves the period a transaction belongs to. Open transactions
// belong to the current month regardless of their stored dates.
func (f *temporalFilterImpl) YearMonth(tx models.Transaction) (int, int, bool) {
	if tx.Status == models.StatusOpen {
		now := f.clock.Now()
		return now.Year(), int(now.Month()), true
	}
	d, ok := effectiveDate(tx)
	if !ok {
		return 0, 0, false
	}
	return d.Year(), int(d.Month()), true
}

// YearOf is YearMonth with an explicit "current year" for open transactions,
// used when the effective year is pinned.
func (f *temporalFilterImpl) YearOf(tx models.Transaction, currentYear int) (int, bool) {
	if tx.Status == models.StatusOpen {
		return currentYear, true
	}
	d, ok := effectiveDate(tx)
	if !ok {
		return 0, false
	}
	return d.Year(), true
}

func statusMatches(tx models.Transaction, status string) bool {
	s, ok := models.ParseStatus(status)
	if !ok {
		return false
	}
	if s == models.StatusAll {
		return tx.Status == models.StatusOpen || tx.Status == models.StatusClosed
	}
	return tx.Status == s
}

// InWindow compares the transaction's period with year/month filters, where
// "all" disables a dimension.
func (f *temporalFilterImpl) InWindow(tx models.Transaction, year, month string) bool {
	anyYear := isAll(year)
	anyMonth := isAll(month)
	if anyYear && anyMonth {
		return true
	}
	y, m, ok := f.YearMonth(tx)
	if !ok {
		return false
	}
	if !anyYear {
		want, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil || want != y {
			return false
		}
	}
	if !anyMonth {
		want, err := strconv.Atoi(strings.TrimSpace(month))
		if err != nil || want != m {
			return false
		}
	}
	return true
}

func (f *temporalFilterImpl) Filter(txs []models.Transaction, status, year, month string) []models.Transaction {
	result := []models.Transaction{}
	for _, tx := range txs {
		if tx.Status != models.StatusOpen && !hasAnyDate(tx) {
			continue
		}
		if statusMatches(tx, status) && f.InWindow(tx, year, month) {
			result = append(result, tx)
		}
	}
	return result
}

func hasAnyDate(tx models.Transaction) bool {
	return strings.TrimSpace(tx.TransactionDate) != "" ||
		strings.TrimSpace(tx.ReservationDate) != "" ||
		strings.TrimSpace(tx.ListingDate) != ""
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, filterAll)
}
