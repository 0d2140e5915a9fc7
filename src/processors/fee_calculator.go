package processors

import (
	"github.com/shopspring/decimal"
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/utils"
)

var half = decimal.NewFromFloat(0.5)

type feeCalculatorImpl struct{}

func NewFeeCalculator() FeeCalculator {
	return &feeCalculatorImpl{}
}

// ComputeBaseFees applies the shared discount against the reservation value and
// then the referral discount against the shared-adjusted fee.
func (c *feeCalculatorImpl) ComputeBaseFees(reservationValue, advisorPercent, brokerPercent, sharedPercent, referralPercent float64) models.BaseFees {
	broker := baseBrokerFee(reservationValue, brokerPercent, sharedPercent, referralPercent)
	return models.BaseFees{
		BrokerFee:  broker.InexactFloat64(),
		AdvisorFee: utils.PercentOfDec(broker, advisorPercent).InexactFloat64(),
	}
}

// GrossFee recomputes the broker gross from value and percent, ignoring the cached amount.
func (c *feeCalculatorImpl) GrossFee(tx models.Transaction) float64 {
	return grossFee(tx).InexactFloat64()
}

func (c *feeCalculatorImpl) AdvisorFeeForSingleTransaction(tx models.Transaction, overridePercent *float64, profile *models.Profile) float64 {
	percent := tx.AdvisorFeePercent
	if overridePercent != nil {
		percent = *overridePercent
	}
	return advisorShareWithFranchise(grossFee(tx), percent, tx.FranchiseOrBrokerPercent, models.PolicyFor(profile)).InexactFloat64()
}

// AdvisorFeeForSplitTransaction applies the percent to a 50% pool when a second
// advisor is present, otherwise to the full gross. Franchise is not considered.
func (c *feeCalculatorImpl) AdvisorFeeForSplitTransaction(tx models.Transaction, advisorPercent float64) float64 {
	return utils.PercentOfDec(advisorPool(grossFee(tx), tx), advisorPercent).InexactFloat64()
}

// NetFee is what the profile's owner takes home from one transaction after
// shared/referral discounts, the advisor split discount, advisor distribution
// and franchise.
func (c *feeCalculatorImpl) NetFee(tx models.Transaction, profile *models.Profile) float64 {
	if profile == nil {
		return 0
	}
	gross := baseBrokerFee(tx.ReservationValue, tx.BrokerFeePercent, tx.SharedPercent, tx.ReferralPercent)
	gross = gross.Sub(utils.PercentOfDec(gross, tx.AdvisorSplitPercent))
	if gross.IsZero() {
		return 0
	}
	if profile.Role.IsTeamLeader() {
		return leaderRetained(gross, tx, profile).InexactFloat64()
	}

	percent := tx.AdvisorFeePercent
	if isAdvisorOf(tx, profile.UID) {
		percent = advisorPercentFor(tx, profile.UID)
	}
	return advisorShareWithFranchise(advisorPool(gross, tx), percent, tx.FranchiseOrBrokerPercent, models.PolicyFor(profile)).InexactFloat64()
}

func grossFee(tx models.Transaction) decimal.Decimal {
	return utils.PercentOfDec(utils.Dec(tx.ReservationValue), tx.BrokerFeePercent)
}

func baseBrokerFee(reservationValue, brokerPercent, sharedPercent, referralPercent float64) decimal.Decimal {
	value := utils.Dec(reservationValue)
	fee := utils.PercentOfDec(value, brokerPercent)
	fee = fee.Sub(utils.PercentOfDec(value, sharedPercent))
	return fee.Sub(utils.PercentOfDec(fee, referralPercent))
}

func advisorPool(gross decimal.Decimal, tx models.Transaction) decimal.Decimal {
	if tx.IsShared() {
		return gross.Mul(half)
	}
	return gross
}

// advisorShareWithFranchise charges the franchise before the split under
// FranchiseOnGross and on the resulting share otherwise.
func advisorShareWithFranchise(base decimal.Decimal, advisorPercent, franchisePercent float64, policy models.CurrencyPolicy) decimal.Decimal {
	if policy == models.FranchiseOnGross {
		adjusted := base.Sub(utils.PercentOfDec(base, franchisePercent))
		return utils.PercentOfDec(adjusted, advisorPercent)
	}
	share := utils.PercentOfDec(base, advisorPercent)
	return share.Sub(utils.PercentOfDec(share, franchisePercent))
}
