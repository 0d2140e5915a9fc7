// src/services/report_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/honorarios/src/logger"
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/processors"
)

// Report keys carry the user's cache version, bumped on every write. A report
// computed from a snapshot taken before a write is stored under the old version
// and never served again.
const (
	ckVersion = "ver_user_%s"

	// Results of a full session recompute
	ckSummaryPrefix = "res_summary_user_%s_"
	ckSummary       = ckSummaryPrefix + "v%d"

	// Dashboard blocks, keyed by their parameters
	ckTypePrefix  = "agg_type_report_user_%s_"
	ckTypeReport  = ckTypePrefix + "v%d"
	ckChartPrefix = "agg_chart_report_user_%s_"
	ckChartReport = ckChartPrefix + "v%d_status_%s"
	ckAgentPrefix = "agg_agent_report_user_%s_"
	ckAgentReport = ckAgentPrefix + "v%d_y_%s_m_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type reportServiceImpl struct {
	transactions TransactionStore
	profiles     ProfileStore
	sessions     *SessionRegistry
	years        EffectiveYearResolver
	filter       processors.TemporalFilter
	search       processors.SearchMatcher
	aggregator   processors.Aggregator
	reportCache  *cache.Cache
}

func NewReportService(
	transactions TransactionStore,
	profiles ProfileStore,
	sessions *SessionRegistry,
	years EffectiveYearResolver,
	filter processors.TemporalFilter,
	search processors.SearchMatcher,
	aggregator processors.Aggregator,
	reportCache *cache.Cache,
) ReportService {
	return &reportServiceImpl{
		transactions: transactions,
		profiles:     profiles,
		sessions:     sessions,
		years:        years,
		filter:       filter,
		search:       search,
		aggregator:   aggregator,
		reportCache:  reportCache,
	}
}

func (s *reportServiceImpl) ListTransactions(ctx context.Context, userID, status, year, month, query string) ([]models.Transaction, error) {
	if _, ok := models.ParseStatus(status); !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, status)
	}
	txs, err := s.transactions.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	filtered := s.filter.Filter(models.NormalizeAll(txs), status, year, month)
	return s.search.SearchTransactions(filtered, query), nil
}

func (s *reportServiceImpl) SaveTransaction(ctx context.Context, userID string, tx models.Transaction) (models.Transaction, error) {
	saved, err := s.transactions.SaveTransaction(ctx, userID, tx.Normalized())
	if err != nil {
		return models.Transaction{}, fmt.Errorf("saving transaction: %w", err)
	}
	s.InvalidateUserCache(userID)
	return saved, nil
}

func (s *reportServiceImpl) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.transactions.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}
	s.InvalidateUserCache(userID)
	return nil
}

func (s *reportServiceImpl) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if p == nil {
		return nil, ErrNoProfile
	}
	return p, nil
}

func (s *reportServiceImpl) SaveProfile(ctx context.Context, userID string, profile models.Profile) error {
	if err := s.profiles.SaveProfile(ctx, userID, profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	s.InvalidateUserCache(userID)
	return nil
}

// InvalidateUserCache bumps the user's cache version, clears every cached
// report and drops the session, forcing a rebuild from the store on the next
// request.
func (s *reportServiceImpl) InvalidateUserCache(userID string) {
	version := s.bumpCacheVersion(userID)
	prefixes := []string{
		fmt.Sprintf(ckSummaryPrefix, userID),
		fmt.Sprintf(ckTypePrefix, userID),
		fmt.Sprintf(ckChartPrefix, userID),
		fmt.Sprintf(ckAgentPrefix, userID),
	}
	for key := range s.reportCache.Items() {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				s.reportCache.Delete(key)
				break
			}
		}
	}
	s.sessions.Drop(userID)
	logger.L.Info("Invalidated all caches for user", "userID", userID, "cacheVersion", version)
}

// cacheVersion must be read before the store is.
func (s *reportServiceImpl) cacheVersion(userID string) int64 {
	if v, found := s.reportCache.Get(fmt.Sprintf(ckVersion, userID)); found {
		return v.(int64)
	}
	return 0
}

func (s *reportServiceImpl) bumpCacheVersion(userID string) int64 {
	key := fmt.Sprintf(ckVersion, userID)
	for {
		if v, err := s.reportCache.IncrementInt64(key, 1); err == nil {
			return v
		}
		if err := s.reportCache.Add(key, int64(1), cache.NoExpiration); err == nil {
			return 1
		}
	}
}

// loadSession brings the user's session up to date with the store.
func (s *reportServiceImpl) loadSession(ctx context.Context, userID string, sess *CalculationSession) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	sess.SetProfile(profile)
	if profile != nil {
		sess.SetRole(profile.Role)
	} else {
		sess.SetRole("")
	}
	return sess.Load(ctx, s.transactions, userID)
}

func (s *reportServiceImpl) Summary(ctx context.Context, userID string) (models.CalculationResult, error) {
	cacheKey := fmt.Sprintf(ckSummary, userID, s.cacheVersion(userID))
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for Summary", "userID", userID)
		return cached.(models.CalculationResult), nil
	}
	logger.L.Info("Cache miss for Summary, computing...", "userID", userID)

	var result models.CalculationResult
	err := s.sessions.WithSession(userID, func(sess *CalculationSession) error {
		if err := s.loadSession(ctx, userID, sess); err != nil {
			return err
		}
		result = sess.Results()
		return nil
	})
	if err != nil {
		return models.CalculationResult{}, err
	}
	s.reportCache.Set(cacheKey, result, cache.DefaultExpiration)
	return result, nil
}

func (s *reportServiceImpl) Filtered(ctx context.Context, userID, year, status string) (models.FilteredFees, error) {
	if _, ok := models.ParseStatus(status); !ok {
		return models.FilteredFees{}, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, status)
	}
	var fees models.FilteredFees
	err := s.sessions.WithSession(userID, func(sess *CalculationSession) error {
		if sess.LastCalculated().IsZero() {
			if err := s.loadSession(ctx, userID, sess); err != nil {
				return err
			}
		}
		fees = sess.RecomputeWithFilters(year, status)
		return nil
	})
	return fees, err
}

// snapshot returns the user's normalized transactions and profile straight from the store.
func (s *reportServiceImpl) snapshot(ctx context.Context, userID string) ([]models.Transaction, *models.Profile, error) {
	txs, err := s.transactions.ListTransactions(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing transactions: %w", err)
	}
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading profile: %w", err)
	}
	return models.NormalizeAll(txs), profile, nil
}

func (s *reportServiceImpl) effectiveYear(profile *models.Profile) int {
	email := ""
	if profile != nil {
		email = profile.Email
	}
	return s.years.EffectiveYear(email)
}

func (s *reportServiceImpl) AgentReport(ctx context.Context, userID, year, month string) (models.AgentReport, error) {
	cacheKey := fmt.Sprintf(ckAgentReport, userID, s.cacheVersion(userID), year, month)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(models.AgentReport), nil
	}
	txs, profile, err := s.snapshot(ctx, userID)
	if err != nil {
		return models.AgentReport{}, err
	}
	report := s.aggregator.AgentReport(txs, year, month, profile)
	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report, nil
}

func (s *reportServiceImpl) TypeReport(ctx context.Context, userID string) (*TypeReport, error) {
	cacheKey := fmt.Sprintf(ckTypeReport, userID, s.cacheVersion(userID))
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*TypeReport), nil
	}
	txs, profile, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	year := s.effectiveYear(profile)
	data := s.aggregator.OperationDataByType(txs, year)
	report := &TypeReport{
		Year:          year,
		OperationData: data,
		ByType:        s.aggregator.ClosedSummaryByType(txs, year),
		ByGroup:       s.aggregator.ClosedSummaryByGroup(txs, year),
		LastColumnSum: s.aggregator.LastColumnSum(data),
	}
	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report, nil
}

func (s *reportServiceImpl) ChartReport(ctx context.Context, userID, status string) (*ChartReport, error) {
	pieStatus := models.StatusClosed
	switch st, _ := models.ParseStatus(status); st {
	case models.StatusFallen:
		pieStatus = models.StatusFallen
	case models.StatusClosed, models.StatusAll:
	default:
		return nil, fmt.Errorf("%w: chart status must be closed or fallen, got %q", ErrInvalidFilter, status)
	}

	cacheKey := fmt.Sprintf(ckChartReport, userID, s.cacheVersion(userID), pieStatus)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*ChartReport), nil
	}
	txs, profile, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	year := s.effectiveYear(profile)

	// Exclusivity and totals describe the live book, fallen deals excluded.
	live := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Status != models.StatusFallen {
			live = append(live, tx)
		}
	}
	report := &ChartReport{
		Year:          year,
		Pie:           s.aggregator.PieChartData(txs, pieStatus, year),
		Exclusivity:   s.aggregator.ExclusivityBreakdown(live),
		ClosedByMonth: s.aggregator.ClosedFeesByMonthCumulative(live, year),
		OpenTotal:     s.aggregator.OpenFeesTotal(live, year),
		Totals:        s.aggregator.CalculateTotals(live),
	}
	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report, nil
}

// IsClientError reports whether err stems from bad input rather than a failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidFilter) || errors.Is(err, ErrMissingUserID) || errors.Is(err, ErrInvalidPayload)
}
