package processors

import (
	"github.com/username/honorarios/src/models"
)

// FeeCalculator computes commission figures for a single transaction.
type FeeCalculator interface {
	ComputeBaseFees(reservationValue, advisorPercent, brokerPercent, sharedPercent, referralPercent float64) models.BaseFees
	GrossFee(tx models.Transaction) float64
	AdvisorFeeForSingleTransaction(tx models.Transaction, overridePercent *float64, profile *models.Profile) float64
	AdvisorFeeForSplitTransaction(tx models.Transaction, advisorPercent float64) float64
	NetFee(tx models.Transaction, profile *models.Profile) float64
}

// TeamDistributionResolver computes what a team leader keeps after paying advisors.
type TeamDistributionResolver interface {
	TeamLeaderRetainedFee(tx models.Transaction, role models.Role, profile *models.Profile) float64
}

// TemporalFilter resolves effective dates and filters by status, year and month.
type TemporalFilter interface {
	Filter(txs []models.Transaction, status, year, month string) []models.Transaction
	YearMonth(tx models.Transaction) (year, month int, ok bool)
	YearOf(tx models.Transaction, currentYear int) (int, bool)
	InWindow(tx models.Transaction, year, month string) bool
}

// SearchMatcher does accent and case insensitive substring search.
type SearchMatcher interface {
	SearchTransactions(txs []models.Transaction, query string) []models.Transaction
	SearchRecords(items []map[string]any, query string, fields []string) []map[string]any
}

// Aggregator sums, averages and groups transactions for reporting.
type Aggregator interface {
	TotalBrokerFee(txs []models.Transaction, status models.OperationStatus) float64
	AdjustedBrokerFees(txs []models.Transaction, year, month string) float64
	AdjustedNetFees(txs []models.Transaction, year, month string, profile *models.Profile) float64
	TotalClosedOperations(txs []models.Transaction, year, month string) int
	TotalBuyerSideCount(txs []models.Transaction, year, month string) int
	TotalSellerSideCount(txs []models.Transaction, year, month string) int
	TotalTipsForUser(txs []models.Transaction, year, userID, month string) int
	TotalReservationValue(txs []models.Transaction, year, month string) float64
	AverageOperationValue(txs []models.Transaction, year, month string) float64
	AverageDaysToSell(txs []models.Transaction, year, month string) float64
	AgentReport(txs []models.Transaction, year, month string, profile *models.Profile) models.AgentReport

	OperationDataByType(txs []models.Transaction, currentYear int) map[models.OperationType]models.TypeData
	ClosedSummaryByType(txs []models.Transaction, currentYear int) map[models.OperationType]models.TypeSummary
	ClosedSummaryByGroup(txs []models.Transaction, currentYear int) models.GroupReport
	LastColumnSum(data map[models.OperationType]models.TypeData) float64
	PieChartData(txs []models.Transaction, status models.OperationStatus, currentYear int) []models.PieSlice
	ExclusivityBreakdown(txs []models.Transaction) models.Exclusivity
	PercentageString(part, total float64) string

	CalculateTotals(txs []models.Transaction) models.Totals
	ClosedFeesByMonthCumulative(txs []models.Transaction, year int) []models.MonthlyAmount
	OpenFeesTotal(txs []models.Transaction, year int) float64
}
