package processors

import (
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/utils"
)

// CalculateTotals builds the headline row. Side counts only consider closed
// transactions; averages run over every transaction supplied.
func (a *aggregatorImpl) CalculateTotals(txs []models.Transaction) models.Totals {
	var t models.Totals
	if len(txs) == 0 {
		return t
	}
	var advisorPercents, brokerPercents float64
	for _, tx := range txs {
		t.ReservationValue = utils.Sum(t.ReservationValue, tx.ReservationValue)
		t.BrokerFees = utils.Sum(t.BrokerFees, tx.BrokerFeeAmount)
		t.AdvisorFees = utils.Sum(t.AdvisorFees, tx.AdvisorFeeAmount)
		advisorPercents = utils.Sum(advisorPercents, tx.AdvisorFeePercent)
		brokerPercents = utils.Sum(brokerPercents, tx.BrokerFeePercent)

		switch tx.Status {
		case models.StatusClosed:
			t.ClosedCount++
			if tx.BuyerSide {
				t.BuyerSides++
			}
			if tx.SellerSide {
				t.SellerSides++
			}
			t.BrokerFeesClosed = utils.Sum(t.BrokerFeesClosed, tx.BrokerFeeAmount)
			t.AdvisorFeesClosed = utils.Sum(t.AdvisorFeesClosed, tx.AdvisorFeeAmount)
		case models.StatusOpen:
			t.BrokerFeesOpen = utils.Sum(t.BrokerFeesOpen, tx.BrokerFeeAmount)
			t.AdvisorFeesOpen = utils.Sum(t.AdvisorFeesOpen, tx.AdvisorFeeAmount)
		}
	}
	t.TotalSides = t.BuyerSides + t.SellerSides
	t.AverageReservationValue = utils.Average(t.ReservationValue, len(txs))
	t.AverageAdvisorPercent = utils.Average(advisorPercents, len(txs))
	t.AverageBrokerPercent = utils.Average(brokerPercents, len(txs))
	return t
}

func (a *aggregatorImpl) feesByMonth(txs []models.Transaction, year int, status models.OperationStatus) [12]float64 {
	var months [12]float64
	for _, tx := range txs {
		if tx.Status != status {
			continue
		}
		y, m, ok := a.filter.YearMonth(tx)
		if tx.Status == models.StatusOpen {
			y = year
		}
		if !ok || y != year {
			continue
		}
		months[m-1] = utils.Sum(months[m-1], tx.BrokerFeeAmount)
	}
	return months
}

// ClosedFeesByMonthCumulative is the running total of closed broker fees across
// the year, one point per month.
func (a *aggregatorImpl) ClosedFeesByMonthCumulative(txs []models.Transaction, year int) []models.MonthlyAmount {
	months := a.feesByMonth(txs, year, models.StatusClosed)
	series := make([]models.MonthlyAmount, 0, len(months))
	running := 0.0
	for i, amount := range months {
		running = utils.Sum(running, amount)
		series = append(series, models.MonthlyAmount{Month: utils.MonthNames[i], Amount: utils.RoundFloat(running, 2)})
	}
	return series
}

func (a *aggregatorImpl) OpenFeesTotal(txs []models.Transaction, year int) float64 {
	months := a.feesByMonth(txs, year, models.StatusOpen)
	return utils.RoundFloat(utils.Sum(months[:]...), 2)
}
