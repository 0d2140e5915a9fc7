package models

import (
	"math"
	"strings"
)

// Transaction is a single brokerage operation as handed over by the data layer.
// JSON names follow the stored documents so records can be decoded as-is.
type Transaction struct {
	ID     string `json:"id"`
	UserID string `json:"user_uid_owner,omitempty"` // Owner of the record in the local store
	TeamID string `json:"teamId,omitempty"`

	TransactionDate string `json:"fecha_operacion,omitempty"`
	ListingDate     string `json:"fecha_captacion,omitempty"`
	ReservationDate string `json:"fecha_reserva,omitempty"`

	Address     string `json:"direccion_reserva,omitempty" validate:"max=256"`
	HouseNumber string `json:"numero_casa,omitempty" validate:"max=32"`
	RealizedBy  string `json:"realizador_venta,omitempty" validate:"max=128"`

	Type   OperationType   `json:"tipo_operacion" validate:"required,max=64"`
	Status OperationStatus `json:"estado" validate:"required,opstatus"`

	ReservationValue            float64 `json:"valor_reserva" validate:"gte=0"`
	BrokerFeePercent            float64 `json:"porcentaje_honorarios_broker" validate:"gte=0,lte=100"`
	AdvisorFeePercent           float64 `json:"porcentaje_honorarios_asesor" validate:"gte=0,lte=100"`
	AdditionalAdvisorFeePercent float64 `json:"porcentaje_honorarios_asesor_adicional,omitempty" validate:"gte=0,lte=100"`
	BuyerSidePercent            float64 `json:"porcentaje_punta_compradora,omitempty" validate:"gte=0,lte=100"`
	SellerSidePercent           float64 `json:"porcentaje_punta_vendedora,omitempty" validate:"gte=0,lte=100"`
	SharedPercent               float64 `json:"porcentaje_compartido,omitempty" validate:"gte=0,lte=100"`
	ReferralPercent             float64 `json:"porcentaje_referido,omitempty" validate:"gte=0,lte=100"`
	FranchiseOrBrokerPercent    float64 `json:"isFranchiseOrBroker,omitempty" validate:"gte=0,lte=100"`
	AdvisorSplitPercent         float64 `json:"reparticion_honorarios_asesor,omitempty" validate:"gte=0,lte=100"`
	BrokerFeeAmount             float64 `json:"honorarios_broker" validate:"gte=0"` // Cached at save time, may be stale
	AdvisorFeeAmount            float64 `json:"honorarios_asesor" validate:"gte=0"`

	PrimaryAdvisorID    string `json:"user_uid,omitempty"`
	AdditionalAdvisorID string `json:"user_uid_adicional,omitempty"`

	BuyerSide      Flag `json:"punta_compradora"`
	SellerSide     Flag `json:"punta_vendedora"`
	Exclusive      Flag `json:"exclusiva"`
	NonExclusive   Flag `json:"no_exclusiva"`
	ListingNotMine Flag `json:"captacion_no_es_mia"`
}

// IsShared reports whether a second, distinct advisor takes part in the operation.
func (t Transaction) IsShared() bool {
	primary := strings.TrimSpace(t.PrimaryAdvisorID)
	additional := strings.TrimSpace(t.AdditionalAdvisorID)
	return primary != "" && additional != "" && primary != additional
}

// AdvisorIDs returns the distinct, non-blank advisor ids in order primary, additional.
func (t Transaction) AdvisorIDs() []string {
	var ids []string
	primary := strings.TrimSpace(t.PrimaryAdvisorID)
	additional := strings.TrimSpace(t.AdditionalAdvisorID)
	if primary != "" {
		ids = append(ids, primary)
	}
	if additional != "" && additional != primary {
		ids = append(ids, additional)
	}
	return ids
}

// SideCount is the number of sides (buyer, seller) the brokerage represented.
func (t Transaction) SideCount() int {
	n := 0
	if t.BuyerSide {
		n++
	}
	if t.SellerSide {
		n++
	}
	return n
}

// Normalized returns a copy with every non-finite numeric field coerced to zero.
// This is the single point where missing or corrupt numbers are neutralised
// before they can reach an aggregate.
func (t Transaction) Normalized() Transaction {
	for _, f := range []*float64{
		&t.ReservationValue, &t.BrokerFeePercent, &t.AdvisorFeePercent,
		&t.AdditionalAdvisorFeePercent, &t.BuyerSidePercent, &t.SellerSidePercent,
		&t.SharedPercent, &t.ReferralPercent, &t.FranchiseOrBrokerPercent, &t.AdvisorSplitPercent,
		&t.BrokerFeeAmount, &t.AdvisorFeeAmount,
	} {
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			*f = 0
		}
	}
	return t
}

// NormalizeAll applies Normalized to every element, returning a new slice.
func NormalizeAll(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = tx.Normalized()
	}
	return out
}
