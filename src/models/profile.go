package models

import "strings"

// Profile describes the participant the figures are computed for.
type Profile struct {
	UID      string `json:"uid" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Currency string `json:"currency,omitempty" validate:"omitempty,len=3"`
	Role     Role   `json:"role" validate:"required,role"`
}

// CurrencyPolicy decides where the franchise levy is charged.
type CurrencyPolicy int

const (
	// FranchiseOnAdvisorShare applies advisor splits to the raw gross and charges
	// the franchise afterwards. Used for USD and whenever the currency is unknown.
	FranchiseOnAdvisorShare CurrencyPolicy = iota
	// FranchiseOnGross charges the franchise on the gross before any split.
	FranchiseOnGross
)

// DefaultCurrencyPolicy applies when no profile or currency is known.
const DefaultCurrencyPolicy = FranchiseOnAdvisorShare

func (p CurrencyPolicy) String() string {
	if p == FranchiseOnGross {
		return "franchise_on_gross"
	}
	return "franchise_on_advisor_share"
}

// PolicyFor returns the franchise ordering for a profile.
func PolicyFor(p *Profile) CurrencyPolicy {
	if p == nil {
		return DefaultCurrencyPolicy
	}
	c := strings.ToUpper(strings.TrimSpace(p.Currency))
	if c == "" || c == "USD" {
		return FranchiseOnAdvisorShare
	}
	return FranchiseOnGross
}
