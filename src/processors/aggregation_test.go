package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/honorarios/src/models"
)

func TestTotalBrokerFee(t *testing.T) {
	agg := newTestAggregator()
	txs := []models.Transaction{
		newTx(func(tx *models.Transaction) { tx.BrokerFeeAmount = 1 }), // stale cached amount
		newTx(withStatus(models.StatusOpen), func(tx *models.Transaction) { tx.ReservationValue = 50000 }),
		newTx(func(tx *models.Transaction) { tx.ListingNotMine = true }),
		newTx(withStatus(models.StatusFallen)),
	}

	assert.InDelta(t, 7500, agg.TotalBrokerFee(txs, ""), 1e-9)
	assert.InDelta(t, 3000, agg.TotalBrokerFee(txs, models.StatusClosed), 1e-9)
	assert.InDelta(t, 1500, agg.TotalBrokerFee(txs, models.StatusOpen), 1e-9)
	assert.InDelta(t, 4500, agg.TotalBrokerFee(txs, models.StatusAll), 1e-9)
	assert.Zero(t, agg.TotalBrokerFee(nil, ""))
}

func TestAdjustedBrokerFeesHalvesSharedDeals(t *testing.T) {
	agg := newTestAggregator()
	txs := []models.Transaction{
		newTx(withAdvisors("a", "b")),
		newTx(withAdvisors("a", "a"), func(tx *models.Transaction) { tx.BrokerFeeAmount = 2000 }),
		newTx(withStatus(models.StatusOpen)),
		newTx(withDate("2023-03-15")),
	}

	assert.InDelta(t, 3500, agg.AdjustedBrokerFees(txs, "2024", "all"), 1e-9)
	assert.InDelta(t, 3500, agg.AdjustedBrokerFees(txs, "2024", "3"), 1e-9)
	assert.Zero(t, agg.AdjustedBrokerFees(txs, "2024", "4"))
	assert.InDelta(t, 3000, agg.AdjustedBrokerFees(txs, "2023", "all"), 1e-9)
}

func TestAdjustedNetFees(t *testing.T) {
	agg := newTestAggregator()
	txs := []models.Transaction{
		newTx(withAdvisors("test-user-id", "")),
		newTx(withAdvisors("test-user-id", "other")),
	}

	assert.Zero(t, agg.AdjustedNetFees(txs, "2024", "all", nil))
	// 1500 for the solo deal, (750 halved) for the shared one.
	got := agg.AdjustedNetFees(txs, "2024", "all", profile("test-user-id", models.RoleAdvisor, "USD"))
	assert.InDelta(t, 1875, got, 1e-9)
}

func TestSideAndOperationCounts(t *testing.T) {
	agg := newTestAggregator()
	txs := []models.Transaction{
		newTx(withSides(true, false)),
		newTx(withSides(true, true)),
		newTx(withSides(false, true), withDate("2024-04-02")),
		newTx(withSides(true, true), withStatus(models.StatusOpen)),
	}

	assert.Equal(t, 3, agg.TotalClosedOperations(txs, "2024", "all"))
	assert.Equal(t, 2, agg.TotalClosedOperations(txs, "2024", "3"))
	assert.Equal(t, 2, agg.TotalBuyerSideCount(txs, "2024", "all"))
	assert.Equal(t, 2, agg.TotalBuyerSideCount(txs, "2024", "3"))
	assert.Equal(t, 2, agg.TotalSellerSideCount(txs, "2024", "all"))
	assert.Equal(t, 1, agg.TotalSellerSideCount(txs, "2024", "4"))
}

func TestTotalTipsForUser(t *testing.T) {
	agg := newTestAggregator()
	tests := []struct {
		name string
		tx   models.Transaction
		want int
	}{
		{"sole advisor both sides", newTx(withAdvisors("me", ""), withSides(true, true)), 2},
		{"sole advisor one side", newTx(withAdvisors("me", ""), withSides(false, true)), 1},
		{"sole advisor no sides", newTx(withAdvisors("me", ""), withSides(false, false)), 0},
		{"shared as primary", newTx(withAdvisors("me", "other"), withSides(true, true)), 1},
		{"shared as additional", newTx(withAdvisors("other", "me"), withSides(true, false)), 1},
		{"shared with no sides still counts", newTx(withAdvisors("other", "me"), withSides(false, false)), 1},
		{"additional only", newTx(withAdvisors("", "me"), withSides(true, true)), 1},
		{"duplicate ids", newTx(withAdvisors("me", "me"), withSides(true, true)), 2},
		{"someone else", newTx(withAdvisors("other", ""), withSides(true, true)), 0},
		{"open deal", newTx(withAdvisors("me", ""), withSides(true, true), withStatus(models.StatusOpen)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, agg.TotalTipsForUser([]models.Transaction{tt.tx}, "2024", "me", "all"))
		})
	}
}

func TestReservationValueAverages(t *testing.T) {
	agg := newTestAggregator()
	txs := []models.Transaction{
		newTx(withFees(100000, 3000)),
		newTx(withFees(200000, 6000), withType(models.TypePurchase)),
		newTx(withFees(300000, 9000), withType(models.TypeRealEstateDevelopment)),
		newTx(withFees(50000, 1500), withType(models.TypeRentalTraditional)),
		newTx(withFees(40000, 1200), withType(models.TypeGarage)),
	}

	assert.InDelta(t, 640000, agg.TotalReservationValue(txs, "2024", "all"), 1e-9)
	assert.InDelta(t, 200000, agg.AverageOperationValue(txs, "2024", "all"), 1e-9)
	assert.Zero(t, agg.TotalReservationValue(nil, "2024", "all"))
	assert.Zero(t, agg.AverageOperationValue(nil, "2024", "all"))
}

func TestAverageDaysToSell(t *testing.T) {
	agg := newTestAggregator()
	txs := []models.Transaction{
		newTx(func(tx *models.Transaction) {
			tx.ListingDate = "2024-03-01"
			tx.ReservationDate = "2024-03-15"
		}),
		newTx(func(tx *models.Transaction) {
			tx.ListingDate = "2024-04-01"
			tx.ReservationDate = "2024-04-20"
		}),
		newTx(withType(models.TypeRentalTemporary), func(tx *models.Transaction) {
			tx.ListingDate = "2023-01-01"
		}),
		newTx(withType(models.TypeRealEstateDevelopment), func(tx *models.Transaction) {
			tx.ListingDate = "2023-01-01"
		}),
		newTx(func(tx *models.Transaction) { tx.ListingDate = "" }),
	}

	assert.InDelta(t, 16.5, agg.AverageDaysToSell(txs, "2024", "all"), 1e-9)
	assert.Zero(t, agg.AverageDaysToSell(nil, "2024", "all"))
}

func TestAgentReport(t *testing.T) {
	agg := newTestAggregator()
	txs := []models.Transaction{
		newTx(withAdvisors("me", ""), withSides(true, true)),
		newTx(withAdvisors("me", "other"), withSides(true, false)),
	}
	report := agg.AgentReport(txs, "2024", "all", profile("me", models.RoleAdvisor, "USD"))

	assert.InDelta(t, 4500, report.AdjustedBrokerFees, 1e-9)
	assert.Equal(t, 2, report.ClosedOperations)
	assert.Equal(t, 2, report.BuyerSides)
	assert.Equal(t, 1, report.SellerSides)
	assert.Equal(t, 3, report.Tips)
	assert.InDelta(t, 200000, report.TotalReservationValue, 1e-9)

	noProfile := agg.AgentReport(txs, "2024", "all", nil)
	assert.Zero(t, noProfile.Tips)
	assert.Zero(t, noProfile.AdjustedNetFees)
}

func typeFixture() []models.Transaction {
	return []models.Transaction{
		newTx(withFees(100000, 3000)),
		newTx(withFees(200000, 5000)),
		newTx(withFees(50000, 1500), withType(models.TypeRentalTraditional)),
		newTx(withFees(400000, 2000), withType(models.TypeDevelopment)),
		newTx(withFees(900000, 9000), withStatus(models.StatusOpen)),
		newTx(withFees(700000, 7000), withDate("2023-08-01")),
		newTx(withFees(600000, 6000), withStatus(models.StatusFallen)),
	}
}

func TestOperationDataByType(t *testing.T) {
	agg := newTestAggregator()
	data := agg.OperationDataByType(typeFixture(), 2024)

	require.Len(t, data, 3)
	assert.Equal(t, models.TypeData{Count: 2, TotalBrokerFee: 8000, TotalValue: 300000}, data[models.TypeSale])
	assert.Equal(t, 1, data[models.TypeRentalTraditional].Count)
	assert.Empty(t, agg.OperationDataByType(nil, 2024))
}

func TestClosedSummaryByType(t *testing.T) {
	agg := newTestAggregator()
	summary := agg.ClosedSummaryByType(typeFixture(), 2024)

	assert.Equal(t, models.TypeSummary{TotalGrossFees: 8000, TotalReservation: 300000, Count: 2}, summary[models.TypeSale])
	assert.NotContains(t, summary, models.TypePurchase)
	assert.Empty(t, agg.ClosedSummaryByType(typeFixture(), 2030))
}

func TestClosedSummaryByGroup(t *testing.T) {
	agg := newTestAggregator()
	report := agg.ClosedSummaryByGroup(typeFixture(), 2024)

	assert.Equal(t, []string{"Venta", "Alquiler Tradicional", "Desarrollo Inmobiliario"}, report.GroupKeys)
	require.Len(t, report.Summary, 3)
	assert.Equal(t, models.GroupSummary{
		Group: "Venta", TotalGrossFees: 8000, Count: 2, TotalValue: 300000, OperationType: models.TypeSale,
	}, report.Summary[0])
	assert.Equal(t, models.TypeDevelopment, report.Summary[2].OperationType)
	assert.InDelta(t, 11500, report.TotalBrokerFee, 1e-9)

	empty := agg.ClosedSummaryByGroup(nil, 2024)
	assert.NotNil(t, empty.Summary)
	assert.NotNil(t, empty.GroupKeys)
	assert.Zero(t, empty.TotalBrokerFee)
}

func TestLastColumnSumExcludesRentalsGoodwillAndGarage(t *testing.T) {
	agg := newTestAggregator()
	data := map[models.OperationType]models.TypeData{
		models.TypeSale:                  {Count: 2, TotalValue: 300000},
		models.TypeRealEstateDevelopment: {Count: 1, TotalValue: 500000},
		models.TypeRentalTraditional:     {Count: 1, TotalValue: 1000},
		models.TypeRentalTemporary:       {Count: 1, TotalValue: 2000},
		models.TypeRentalCommercial:      {Count: 1, TotalValue: 3000},
		models.TypeBusinessGoodwill:      {Count: 1, TotalValue: 80000},
		models.TypeGarage:                {Count: 1, TotalValue: 20000},
		models.TypePurchase:              {Count: 0, TotalValue: 0},
	}
	assert.InDelta(t, 650000, agg.LastColumnSum(data), 1e-9)
	assert.Zero(t, agg.LastColumnSum(nil))
}

func TestPieChartData(t *testing.T) {
	agg := newTestAggregator()
	txs := []models.Transaction{
		newTx(),
		newTx(withType(models.TypePurchase)),
		newTx(),
		newTx(withStatus(models.StatusFallen)),
		newTx(withDate("2022-01-01")),
	}

	assert.Equal(t, []models.PieSlice{{Name: "Venta", Value: 2}, {Name: "Compra", Value: 1}},
		agg.PieChartData(txs, models.StatusClosed, 2024))
	assert.Equal(t, []models.PieSlice{{Name: "Venta", Value: 1}}, agg.PieChartData(txs, models.StatusFallen, 2024))
	assert.Equal(t, []models.PieSlice{}, agg.PieChartData(nil, models.StatusClosed, 2024))
}

func TestExclusivityBreakdown(t *testing.T) {
	agg := newTestAggregator()
	exclusive := func(tx *models.Transaction) { tx.Exclusive = true }
	nonExclusive := func(tx *models.Transaction) { tx.NonExclusive = true }
	txs := []models.Transaction{
		newTx(exclusive),
		newTx(exclusive),
		newTx(nonExclusive),
		newTx(),
		newTx(exclusive, nonExclusive),
	}

	got := agg.ExclusivityBreakdown(txs)
	assert.Equal(t, 2, got.Exclusive)
	assert.Equal(t, 1, got.NonExclusive)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Unspecified)
	assert.InDelta(t, float64(2)/3*100, got.ExclusivePercentage, 1e-9)
	assert.InDelta(t, float64(1)/3*100, got.NonExclusivePercentage, 1e-9)

	assert.Equal(t, models.Exclusivity{}, agg.ExclusivityBreakdown(nil))
}

func TestPercentageString(t *testing.T) {
	agg := newTestAggregator()
	assert.Equal(t, "25.00", agg.PercentageString(25, 100))
	assert.Equal(t, "0.00", agg.PercentageString(0, 100))
	assert.Equal(t, "Infinity", agg.PercentageString(10, 0))
	assert.Equal(t, "-Infinity", agg.PercentageString(-10, 0))
	assert.Equal(t, "NaN", agg.PercentageString(0, 0))
	assert.Equal(t, "33.33", agg.PercentageString(1, 3))
}

func TestCalculateTotals(t *testing.T) {
	agg := newTestAggregator()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, models.Totals{}, agg.CalculateTotals(nil))
	})

	t.Run("sums and sides", func(t *testing.T) {
		txs := []models.Transaction{
			newTx(withFees(100000, 3000), withSides(true, false)),
			newTx(withFees(200000, 5000), withSides(false, true), func(tx *models.Transaction) { tx.AdvisorFeeAmount = 2500 }),
			newTx(withFees(150000, 4000), withSides(true, true), withStatus(models.StatusOpen), func(tx *models.Transaction) { tx.AdvisorFeeAmount = 2000 }),
		}
		got := agg.CalculateTotals(txs)
		assert.InDelta(t, 450000, got.ReservationValue, 1e-9)
		assert.InDelta(t, 12000, got.BrokerFees, 1e-9)
		assert.InDelta(t, 6000, got.AdvisorFees, 1e-9)
		assert.Equal(t, 2, got.ClosedCount)
		assert.Equal(t, 1, got.BuyerSides)
		assert.Equal(t, 1, got.SellerSides)
		assert.Equal(t, 2, got.TotalSides)
	})

	t.Run("closed and open split", func(t *testing.T) {
		txs := []models.Transaction{
			newTx(func(tx *models.Transaction) {
				tx.AdvisorFeeAmount = 1000
				tx.BrokerFeeAmount = 2000
			}),
			newTx(withStatus(models.StatusOpen), func(tx *models.Transaction) {
				tx.AdvisorFeeAmount = 500
				tx.BrokerFeeAmount = 1000
			}),
		}
		got := agg.CalculateTotals(txs)
		assert.InDelta(t, 1000, got.AdvisorFeesClosed, 1e-9)
		assert.InDelta(t, 500, got.AdvisorFeesOpen, 1e-9)
		assert.InDelta(t, 2000, got.BrokerFeesClosed, 1e-9)
		assert.InDelta(t, 1000, got.BrokerFeesOpen, 1e-9)
	})

	t.Run("averages", func(t *testing.T) {
		txs := []models.Transaction{
			newTx(withFees(100000, 3000), func(tx *models.Transaction) {
				tx.AdvisorFeePercent = 40
				tx.BrokerFeePercent = 3
			}),
			newTx(withFees(200000, 4000), func(tx *models.Transaction) {
				tx.AdvisorFeePercent = 60
				tx.BrokerFeePercent = 2
			}),
		}
		got := agg.CalculateTotals(txs)
		assert.InDelta(t, 150000, got.AverageReservationValue, 1e-9)
		assert.InDelta(t, 50, got.AverageAdvisorPercent, 1e-9)
		assert.InDelta(t, 2.5, got.AverageBrokerPercent, 1e-9)
	})
}

func TestMonthlySeries(t *testing.T) {
	agg := newTestAggregator()
	txs := []models.Transaction{
		newTx(withFees(100000, 3000)),
		newTx(withFees(100000, 2000.125), withDate("2024-05-20")),
		newTx(withFees(100000, 7000), withDate("2023-05-20")),
		newTx(withFees(100000, 1000), withStatus(models.StatusOpen), withDate("2019-01-01")),
	}

	series := agg.ClosedFeesByMonthCumulative(txs, 2024)
	require.Len(t, series, 12)
	assert.Equal(t, "Enero", series[0].Month)
	assert.Zero(t, series[1].Amount)
	assert.InDelta(t, 3000, series[2].Amount, 1e-9)
	assert.InDelta(t, 3000, series[3].Amount, 1e-9)
	assert.InDelta(t, 5000.13, series[4].Amount, 1e-9)
	assert.Equal(t, "Diciembre", series[11].Month)
	assert.InDelta(t, 5000.13, series[11].Amount, 1e-9)

	assert.InDelta(t, 1000, agg.OpenFeesTotal(txs, 2024), 1e-9)
	assert.InDelta(t, 1000, agg.OpenFeesTotal(txs, 2021), 1e-9, "open deals always count for the requested year")
}
