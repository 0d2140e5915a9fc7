package processors

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/utils"
)

type teamDistributionResolverImpl struct {
	fees FeeCalculator
}

func NewTeamDistributionResolver(fees FeeCalculator) TeamDistributionResolver {
	return &teamDistributionResolverImpl{fees: fees}
}

// TeamLeaderRetainedFee returns 0 without a profile. Non leaders are paid like a
// single advisor on the full gross.
func (r *teamDistributionResolverImpl) TeamLeaderRetainedFee(tx models.Transaction, role models.Role, profile *models.Profile) float64 {
	if profile == nil {
		return 0
	}
	gross := utils.Dec(r.fees.GrossFee(tx))
	if !role.IsTeamLeader() {
		return utils.PercentOfDec(gross, tx.AdvisorFeePercent).InexactFloat64()
	}
	return leaderRetained(gross, tx, profile).InexactFloat64()
}

// leaderRetained distributes gross to the advisors that are not the leader and
// returns the remainder. Under FranchiseOnGross the split runs on the
// franchise-adjusted gross; otherwise the franchise computed on the raw gross is
// taken once from the leader's remainder.
func leaderRetained(gross decimal.Decimal, tx models.Transaction, profile *models.Profile) decimal.Decimal {
	franchise := utils.PercentOfDec(gross, tx.FranchiseOrBrokerPercent)
	base := gross
	tail := decimal.Zero
	if models.PolicyFor(profile) == models.FranchiseOnGross {
		base = gross.Sub(franchise)
	} else {
		tail = franchise
	}

	advisors := tx.AdvisorIDs()
	var paid decimal.Decimal
	switch len(advisors) {
	case 0:
		paid = decimal.Zero
	case 1:
		if advisors[0] == strings.TrimSpace(profile.UID) {
			paid = decimal.Zero
		} else {
			paid = utils.PercentOfDec(base, advisorPercentFor(tx, advisors[0]))
		}
	default:
		pool := base.Mul(half)
		paid = decimal.Zero
		for _, id := range advisors {
			if id == strings.TrimSpace(profile.UID) {
				continue
			}
			paid = paid.Add(utils.PercentOfDec(pool, advisorPercentFor(tx, id)))
		}
	}
	return base.Sub(paid).Sub(tail)
}

// advisorPercentFor picks the percent recorded for the given advisor. The
// additional advisor falls back to the primary percent when none was stored.
func advisorPercentFor(tx models.Transaction, id string) float64 {
	if id == strings.TrimSpace(tx.PrimaryAdvisorID) {
		return tx.AdvisorFeePercent
	}
	if id == strings.TrimSpace(tx.AdditionalAdvisorID) && tx.AdditionalAdvisorFeePercent != 0 {
		return tx.AdditionalAdvisorFeePercent
	}
	return tx.AdvisorFeePercent
}

func isAdvisorOf(tx models.Transaction, uid string) bool {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return false
	}
	for _, id := range tx.AdvisorIDs() {
		if id == uid {
			return true
		}
	}
	return false
}
