package processors

import (
	"time"

	"github.com/username/honorarios/src/models"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// newTx returns a closed 100000 sale at 3% broker / 50% advisor, dated March 2024.
func newTx(overrides ...func(*models.Transaction)) models.Transaction {
	tx := models.Transaction{
		ID:                "1",
		TeamID:            "test-team-id",
		TransactionDate:   "2024-03-15",
		ListingDate:       "2024-02-01",
		ReservationDate:   "2024-03-15",
		Address:           "Test Address",
		HouseNumber:       "123",
		RealizedBy:        "Test Agent",
		Type:              models.TypeSale,
		Status:            models.StatusClosed,
		ReservationValue:  100000,
		BrokerFeePercent:  3,
		AdvisorFeePercent: 50,
		BrokerFeeAmount:   3000,
		AdvisorFeeAmount:  1500,
		PrimaryAdvisorID:  "test-user-id",
	}
	for _, o := range overrides {
		o(&tx)
	}
	return tx
}

func withStatus(s models.OperationStatus) func(*models.Transaction) {
	return func(tx *models.Transaction) { tx.Status = s }
}

func withType(t models.OperationType) func(*models.Transaction) {
	return func(tx *models.Transaction) { tx.Type = t }
}

func withDate(d string) func(*models.Transaction) {
	return func(tx *models.Transaction) { tx.TransactionDate = d }
}

func withFees(value, brokerAmount float64) func(*models.Transaction) {
	return func(tx *models.Transaction) {
		tx.ReservationValue = value
		tx.BrokerFeeAmount = brokerAmount
	}
}

func withAdvisors(primary, additional string) func(*models.Transaction) {
	return func(tx *models.Transaction) {
		tx.PrimaryAdvisorID = primary
		tx.AdditionalAdvisorID = additional
	}
}

func withSides(buyer, seller bool) func(*models.Transaction) {
	return func(tx *models.Transaction) {
		tx.BuyerSide = models.Flag(buyer)
		tx.SellerSide = models.Flag(seller)
	}
}

func newTestFilter() TemporalFilter {
	return NewTemporalFilter(FixedClock(testNow))
}

func newTestAggregator() Aggregator {
	return NewAggregator(NewFeeCalculator(), newTestFilter())
}

func profile(uid string, role models.Role, currency string) *models.Profile {
	return &models.Profile{UID: uid, Role: role, Currency: currency}
}
