package processors

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/utils"
)

type aggregatorImpl struct {
	fees   FeeCalculator
	filter TemporalFilter
}

func NewAggregator(fees FeeCalculator, filter TemporalFilter) Aggregator {
	return &aggregatorImpl{fees: fees, filter: filter}
}

// TotalBrokerFee recomputes value*percent for every transaction that matches the
// status filter and whose listing belongs to the office. An empty status
// disables the filter; StatusAll means open or closed.
func (a *aggregatorImpl) TotalBrokerFee(txs []models.Transaction, status models.OperationStatus) float64 {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.ListingNotMine {
			continue
		}
		if status != "" && !statusMatches(tx, string(status)) {
			continue
		}
		total = total.Add(utils.Dec(a.fees.GrossFee(tx)))
	}
	return total.InexactFloat64()
}

func (a *aggregatorImpl) closedInWindow(txs []models.Transaction, year, month string) []models.Transaction {
	var out []models.Transaction
	for _, tx := range txs {
		if tx.Status == models.StatusClosed && a.filter.InWindow(tx, year, month) {
			out = append(out, tx)
		}
	}
	return out
}

func shareFactor(tx models.Transaction) decimal.Decimal {
	if tx.IsShared() {
		return half
	}
	return decimal.NewFromInt(1)
}

// AdjustedBrokerFees sums the cached broker fee of closed transactions in the
// window, halved for co-brokered ones.
func (a *aggregatorImpl) AdjustedBrokerFees(txs []models.Transaction, year, month string) float64 {
	total := decimal.Zero
	for _, tx := range a.closedInWindow(txs, year, month) {
		total = total.Add(utils.Dec(tx.BrokerFeeAmount).Mul(shareFactor(tx)))
	}
	return total.InexactFloat64()
}

func (a *aggregatorImpl) AdjustedNetFees(txs []models.Transaction, year, month string, profile *models.Profile) float64 {
	if profile == nil {
		return 0
	}
	total := decimal.Zero
	for _, tx := range a.closedInWindow(txs, year, month) {
		total = total.Add(utils.Dec(a.fees.NetFee(tx, profile)).Mul(shareFactor(tx)))
	}
	return total.InexactFloat64()
}

func (a *aggregatorImpl) TotalClosedOperations(txs []models.Transaction, year, month string) int {
	return len(a.closedInWindow(txs, year, month))
}

func (a *aggregatorImpl) TotalBuyerSideCount(txs []models.Transaction, year, month string) int {
	n := 0
	for _, tx := range a.closedInWindow(txs, year, month) {
		if tx.BuyerSide {
			n++
		}
	}
	return n
}

func (a *aggregatorImpl) TotalSellerSideCount(txs []models.Transaction, year, month string) int {
	n := 0
	for _, tx := range a.closedInWindow(txs, year, month) {
		if tx.SellerSide {
			n++
		}
	}
	return n
}

// TotalTipsForUser counts the sides credited to userID. A sole primary advisor
// gets every side; once an additional advisor is recorded each advisor gets
// exactly one, even when the primary slot is blank.
func (a *aggregatorImpl) TotalTipsForUser(txs []models.Transaction, year, userID, month string) int {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0
	}
	n := 0
	for _, tx := range a.closedInWindow(txs, year, month) {
		primary := strings.TrimSpace(tx.PrimaryAdvisorID)
		additional := strings.TrimSpace(tx.AdditionalAdvisorID)
		switch {
		case primary == userID && additional == userID:
			n += tx.SideCount()
		case primary == userID || additional == userID:
			if additional != "" {
				n++
			} else {
				n += tx.SideCount()
			}
		}
	}
	return n
}

// TotalReservationValue sums closed, non-rental reservation values.
func (a *aggregatorImpl) TotalReservationValue(txs []models.Transaction, year, month string) float64 {
	total := decimal.Zero
	for _, tx := range a.closedInWindow(txs, year, month) {
		if tx.Type.IsRental() {
			continue
		}
		total = total.Add(utils.Dec(tx.ReservationValue))
	}
	return total.InexactFloat64()
}

func countsTowardAverageValue(t models.OperationType) bool {
	return t == models.TypeSale || t == models.TypePurchase || t == models.TypeRealEstateDevelopment
}

// AverageOperationValue averages sales, purchases and developments.
func (a *aggregatorImpl) AverageOperationValue(txs []models.Transaction, year, month string) float64 {
	total := 0.0
	count := 0
	for _, tx := range a.closedInWindow(txs, year, month) {
		if !countsTowardAverageValue(tx.Type) {
			continue
		}
		total = utils.Sum(total, tx.ReservationValue)
		count++
	}
	return utils.Average(total, count)
}

// AverageDaysToSell averages the days from listing to reservation over closed
// transactions that are neither rentals nor developments and carry both dates.
func (a *aggregatorImpl) AverageDaysToSell(txs []models.Transaction, year, month string) float64 {
	days := 0
	count := 0
	for _, tx := range a.closedInWindow(txs, year, month) {
		if tx.Type.IsRental() || tx.Type == models.TypeRealEstateDevelopment {
			continue
		}
		listed, ok := utils.ParseDate(tx.ListingDate)
		if !ok {
			continue
		}
		reserved, ok := utils.ParseDate(tx.ReservationDate)
		if !ok {
			continue
		}
		days += utils.DaysBetween(listed, reserved)
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(days) / float64(count)
}

func (a *aggregatorImpl) AgentReport(txs []models.Transaction, year, month string, profile *models.Profile) models.AgentReport {
	report := models.AgentReport{
		AdjustedBrokerFees:    a.AdjustedBrokerFees(txs, year, month),
		AdjustedNetFees:       a.AdjustedNetFees(txs, year, month, profile),
		ClosedOperations:      a.TotalClosedOperations(txs, year, month),
		BuyerSides:            a.TotalBuyerSideCount(txs, year, month),
		SellerSides:           a.TotalSellerSideCount(txs, year, month),
		TotalReservationValue: a.TotalReservationValue(txs, year, month),
		AverageOperationValue: a.AverageOperationValue(txs, year, month),
		AverageDaysToSell:     a.AverageDaysToSell(txs, year, month),
	}
	if profile != nil {
		report.Tips = a.TotalTipsForUser(txs, year, profile.UID, month)
	}
	return report
}
