package services

import (
	"context"
	"testing"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/processors"
)

func newTestService(store *memStore) ReportService {
	years := NewPinnedYearResolver(testClock, nil)
	fees := processors.NewFeeCalculator()
	filter := processors.NewTemporalFilter(testClock)
	return NewReportService(
		store, store,
		NewSessionRegistry(testClock, years, 0),
		years,
		filter,
		processors.NewSearchMatcher(),
		processors.NewAggregator(fees, filter),
		cache.New(DefaultCacheExpiration, CacheCleanupInterval),
	)
}

func seededStore() *memStore {
	store := newMemStore()
	store.txs["u1"] = sessionFixture()
	store.profiles["u1"] = *leaderProfile("leader@example.com")
	return store
}

func TestSummaryIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	svc := newTestService(store)

	res, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 3000, res.GrossClosedCurrentYear, 1e-9)
	assert.Equal(t, 1, store.lists)

	_, err = svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.lists, "second call served from cache")

	_, err = svc.SaveTransaction(ctx, "u1", newTx("closed-2024-b"))
	require.NoError(t, err)

	res, err = svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 6000, res.GrossClosedCurrentYear, 1e-9)
}

func TestSummaryWithoutProfileIsZero(t *testing.T) {
	store := newMemStore()
	store.txs["u1"] = sessionFixture()
	svc := newTestService(store)

	res, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, res.GrossClosedCurrentYear)
	assert.Equal(t, testNow, res.CalculatedAt)
}

func TestSummaryRequiresUser(t *testing.T) {
	svc := newTestService(newMemStore())
	_, err := svc.Summary(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingUserID)
	assert.True(t, IsClientError(err))
}

func TestSummaryPropagatesStoreErrors(t *testing.T) {
	store := seededStore()
	store.listErr = errStore
	svc := newTestService(store)

	_, err := svc.Summary(context.Background(), "u1")
	assert.ErrorIs(t, err, errStore)
	assert.False(t, IsClientError(err))
}

func TestFiltered(t *testing.T) {
	svc := newTestService(seededStore())

	fees, err := svc.Filtered(context.Background(), "u1", "2024", "all")
	require.NoError(t, err)
	assert.InDelta(t, 4500, fees.Gross, 1e-9)
	assert.InDelta(t, 2250, fees.Net, 1e-9)

	_, err = svc.Filtered(context.Background(), "u1", "2024", "pending")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	store.txs["u1"] = append(store.txs["u1"], newTx("rosario", func(tx *models.Transaction) { tx.Address = "Rosario 10" }))
	svc := newTestService(store)

	all, err := svc.ListTransactions(ctx, "u1", "all", "all", "all", "")
	require.NoError(t, err)
	assert.Len(t, all, 5, "fallen excluded")

	hits, err := svc.ListTransactions(ctx, "u1", "Cerrada", "2024", "all", "cordoba")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "closed-2024", hits[0].ID)

	_, err = svc.ListTransactions(ctx, "u1", "pending", "all", "all", "")
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.True(t, IsClientError(err))
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore())

	_, err := svc.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoProfile)

	require.NoError(t, svc.SaveProfile(ctx, "u1", *leaderProfile("x@example.com")))
	p, err := svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeamLeaderBroker, p.Role)
}

func TestDeleteTransactionInvalidates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(seededStore())

	_, err := svc.AgentReport(ctx, "u1", "2024", "all")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, "u1", "closed-2024"))
	report, err := svc.AgentReport(ctx, "u1", "2024", "all")
	require.NoError(t, err)
	assert.Zero(t, report.ClosedOperations)

	assert.Error(t, svc.DeleteTransaction(ctx, "u1", "missing"))
}

func TestAgentReport(t *testing.T) {
	svc := newTestService(seededStore())
	report, err := svc.AgentReport(context.Background(), "u1", "2024", "all")
	require.NoError(t, err)
	assert.Equal(t, 1, report.ClosedOperations)
	assert.InDelta(t, 3000, report.AdjustedBrokerFees, 1e-9)
	assert.InDelta(t, 1500, report.AdjustedNetFees, 1e-9)
}

func TestReportComputedBeforeWriteIsNotServed(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	svc := newTestService(store)

	// A write lands after the report has read the store but before it is cached.
	store.afterList = func() {
		_, err := svc.SaveTransaction(ctx, "u1", newTx("closed-2024-b"))
		require.NoError(t, err)
	}
	stale, err := svc.AgentReport(ctx, "u1", "2024", "all")
	require.NoError(t, err)
	assert.Equal(t, 1, stale.ClosedOperations)

	fresh, err := svc.AgentReport(ctx, "u1", "2024", "all")
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.ClosedOperations)
	assert.InDelta(t, 6000, fresh.AdjustedBrokerFees, 1e-9)

	cached, err := svc.AgentReport(ctx, "u1", "2024", "all")
	require.NoError(t, err)
	assert.Equal(t, fresh, cached)
	assert.Equal(t, 2, store.lists, "third call served from cache")
}

func TestTypeReport(t *testing.T) {
	svc := newTestService(seededStore())
	report, err := svc.TypeReport(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 1, report.OperationData[models.TypeSale].Count)
	assert.Equal(t, []string{"Venta"}, report.ByGroup.GroupKeys)
	assert.InDelta(t, 100000, report.LastColumnSum, 1e-9)
}

func TestChartReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(seededStore())

	closed, err := svc.ChartReport(ctx, "u1", "closed")
	require.NoError(t, err)
	assert.Equal(t, []models.PieSlice{{Name: "Venta", Value: 1}}, closed.Pie)
	require.Len(t, closed.ClosedByMonth, 12)
	assert.InDelta(t, 3000, closed.ClosedByMonth[11].Amount, 1e-9)
	assert.InDelta(t, 6000, closed.OpenTotal, 1e-9)
	assert.Equal(t, 2, closed.Totals.ClosedCount)

	fallen, err := svc.ChartReport(ctx, "u1", "fallen")
	require.NoError(t, err)
	assert.Equal(t, []models.PieSlice{{Name: "Venta", Value: 1}}, fallen.Pie)

	_, err = svc.ChartReport(ctx, "u1", "En Curso")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
