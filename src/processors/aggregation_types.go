package processors

import (
	"github.com/shopspring/decimal"
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/utils"
)

// lastColumnExcluded are the buckets left out of the average-ticket total.
var lastColumnExcluded = map[models.OperationType]bool{
	models.TypeRentalTraditional: true,
	models.TypeRentalTemporary:   true,
	models.TypeRentalCommercial:  true,
	models.TypeBusinessGoodwill:  true,
	models.TypeGarage:            true,
}

func (a *aggregatorImpl) closedInYear(txs []models.Transaction, currentYear int) []models.Transaction {
	var out []models.Transaction
	for _, tx := range txs {
		if tx.Status != models.StatusClosed {
			continue
		}
		if y, ok := a.filter.YearOf(tx, currentYear); ok && y == currentYear {
			out = append(out, tx)
		}
	}
	return out
}

func (a *aggregatorImpl) OperationDataByType(txs []models.Transaction, currentYear int) map[models.OperationType]models.TypeData {
	result := map[models.OperationType]models.TypeData{}
	for _, tx := range a.closedInYear(txs, currentYear) {
		d := result[tx.Type]
		d.Count++
		d.TotalBrokerFee = utils.Sum(d.TotalBrokerFee, tx.BrokerFeeAmount)
		d.TotalValue = utils.Sum(d.TotalValue, tx.ReservationValue)
		result[tx.Type] = d
	}
	return result
}

func (a *aggregatorImpl) ClosedSummaryByType(txs []models.Transaction, currentYear int) map[models.OperationType]models.TypeSummary {
	result := map[models.OperationType]models.TypeSummary{}
	for _, tx := range a.closedInYear(txs, currentYear) {
		s := result[tx.Type]
		s.Count++
		s.TotalGrossFees = utils.Sum(s.TotalGrossFees, tx.BrokerFeeAmount)
		s.TotalReservation = utils.Sum(s.TotalReservation, tx.ReservationValue)
		result[tx.Type] = s
	}
	return result
}

// ClosedSummaryByGroup rolls types into their reporting group. Groups keep the
// order in which they first appear; OperationType is the first type seen.
func (a *aggregatorImpl) ClosedSummaryByGroup(txs []models.Transaction, currentYear int) models.GroupReport {
	report := models.GroupReport{Summary: []models.GroupSummary{}, GroupKeys: []string{}}
	index := map[string]int{}
	total := decimal.Zero
	for _, tx := range a.closedInYear(txs, currentYear) {
		group := tx.Type.Group()
		i, seen := index[group]
		if !seen {
			i = len(report.Summary)
			index[group] = i
			report.Summary = append(report.Summary, models.GroupSummary{Group: group, OperationType: tx.Type})
			report.GroupKeys = append(report.GroupKeys, group)
		}
		s := &report.Summary[i]
		s.Count++
		s.TotalGrossFees = utils.Sum(s.TotalGrossFees, tx.BrokerFeeAmount)
		s.TotalValue = utils.Sum(s.TotalValue, tx.ReservationValue)
		total = total.Add(utils.Dec(tx.BrokerFeeAmount))
	}
	report.TotalBrokerFee = total.InexactFloat64()
	return report
}

// LastColumnSum adds the average ticket (value/count) of every bucket outside
// the rental, goodwill and garage categories.
func (a *aggregatorImpl) LastColumnSum(data map[models.OperationType]models.TypeData) float64 {
	total := decimal.Zero
	for t, d := range data {
		if lastColumnExcluded[t] || d.Count == 0 {
			continue
		}
		total = total.Add(utils.Dec(utils.Average(d.TotalValue, d.Count)))
	}
	return total.InexactFloat64()
}

// PieChartData counts closed (or fallen) transactions of the year per type.
// Any status other than StatusFallen is treated as closed.
func (a *aggregatorImpl) PieChartData(txs []models.Transaction, status models.OperationStatus, currentYear int) []models.PieSlice {
	want := models.StatusClosed
	if status == models.StatusFallen {
		want = models.StatusFallen
	}
	slices := []models.PieSlice{}
	index := map[models.OperationType]int{}
	for _, tx := range txs {
		if tx.Status != want {
			continue
		}
		if y, ok := a.filter.YearOf(tx, currentYear); !ok || y != currentYear {
			continue
		}
		i, seen := index[tx.Type]
		if !seen {
			i = len(slices)
			index[tx.Type] = i
			slices = append(slices, models.PieSlice{Name: string(tx.Type)})
		}
		slices[i].Value++
	}
	return slices
}

// ExclusivityBreakdown only counts transactions with exactly one of the two
// flags set; the rest are reported as unspecified.
func (a *aggregatorImpl) ExclusivityBreakdown(txs []models.Transaction) models.Exclusivity {
	var e models.Exclusivity
	for _, tx := range txs {
		exclusive, nonExclusive := bool(tx.Exclusive), bool(tx.NonExclusive)
		switch {
		case exclusive && !nonExclusive:
			e.Exclusive++
		case nonExclusive && !exclusive:
			e.NonExclusive++
		default:
			e.Unspecified++
		}
	}
	e.Total = e.Exclusive + e.NonExclusive
	if e.Total > 0 {
		e.ExclusivePercentage = float64(e.Exclusive) / float64(e.Total) * 100
		e.NonExclusivePercentage = float64(e.NonExclusive) / float64(e.Total) * 100
	}
	return e
}

func (a *aggregatorImpl) PercentageString(part, total float64) string {
	return utils.PercentageString(part, total)
}
