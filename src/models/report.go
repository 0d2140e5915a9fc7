package models

import "time"

// CalculationResult is the bundle produced by a session recompute. It is
// replaced as a whole and never edited field by field.
type CalculationResult struct {
	GrossClosedCurrentYear float64   `json:"honorariosBrutos"`
	GrossOpenCurrentYear   float64   `json:"honorariosBrutosEnCurso"`
	GrossOpenPriorYear     float64   `json:"honorariosBrutosEnCursoAnioAnterior"`
	GrossOpenTotal         float64   `json:"honorariosBrutosEnCursoTotal"`
	NetClosed              float64   `json:"honorariosNetos"`
	NetOpen                float64   `json:"honorariosNetosEnCurso"`
	CalculatedAt           time.Time `json:"lastCalculated"`
}

// FilteredFees is the stateless gross/net pair for an ad-hoc filter.
type FilteredFees struct {
	Gross float64 `json:"brutos"`
	Net   float64 `json:"netos"`
}

// BaseFees is the broker/advisor pair after shared and referral discounts.
type BaseFees struct {
	BrokerFee  float64 `json:"honorarios_broker"`
	AdvisorFee float64 `json:"honorarios_asesor"`
}

// TypeData is one bucket of OperationDataByType.
type TypeData struct {
	Count          int     `json:"cantidad"`
	TotalBrokerFee float64 `json:"totalHonorarios"`
	TotalValue     float64 `json:"totalVenta"`
}

// TypeSummary is one bucket of ClosedSummaryByType.
type TypeSummary struct {
	TotalGrossFees   float64 `json:"totalHonorariosBrutos"`
	TotalReservation float64 `json:"totalMontoVentasReserva"`
	Count            int     `json:"cantidadOperaciones"`
}

type GroupSummary struct {
	Group          string        `json:"group"`
	TotalGrossFees float64       `json:"totalHonorariosBrutos"`
	Count          int           `json:"cantidadOperaciones"`
	TotalValue     float64       `json:"totalMontoOperaciones"`
	OperationType  OperationType `json:"operationType"`
}

// GroupReport is the by-group summary plus its grand total and group keys in
// first-seen order.
type GroupReport struct {
	Summary        []GroupSummary `json:"summaryArray"`
	TotalBrokerFee float64        `json:"totalMontoHonorariosBroker"`
	GroupKeys      []string       `json:"groupKeys"`
}

type PieSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Exclusivity struct {
	Exclusive              int     `json:"cantidadExclusivas"`
	NonExclusive           int     `json:"cantidadNoExclusivas"`
	Total                  int     `json:"totalOperaciones"`
	Unspecified            int     `json:"cantidadSinEspecificar"`
	ExclusivePercentage    float64 `json:"porcentajeExclusividad"`
	NonExclusivePercentage float64 `json:"porcentajeNoExclusividad"`
}

// Totals is the dashboard headline row.
type Totals struct {
	ReservationValue        float64 `json:"valor_reserva"`
	BrokerFees              float64 `json:"honorarios_broker"`
	AdvisorFees             float64 `json:"honorarios_asesor"`
	ClosedCount             int     `json:"cantidad_operaciones"`
	BuyerSides              int     `json:"punta_compradora"`
	SellerSides             int     `json:"punta_vendedora"`
	TotalSides              int     `json:"suma_total_de_puntas"`
	BrokerFeesClosed        float64 `json:"honorarios_broker_cerradas"`
	BrokerFeesOpen          float64 `json:"honorarios_broker_abiertas"`
	AdvisorFeesClosed       float64 `json:"honorarios_asesor_cerradas"`
	AdvisorFeesOpen         float64 `json:"honorarios_asesor_abiertas"`
	AverageReservationValue float64 `json:"promedio_valor_reserva"`
	AverageAdvisorPercent   float64 `json:"porcentaje_honorarios_asesor"`
	AverageBrokerPercent    float64 `json:"porcentaje_honorarios_broker"`
}

// MonthlyAmount is one point of a month series, ordered January to December.
type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// AgentReport gathers the per-advisor figures for a year/month window.
type AgentReport struct {
	AdjustedBrokerFees    float64 `json:"honorariosBrutos"`
	AdjustedNetFees       float64 `json:"honorariosNetos"`
	ClosedOperations      int     `json:"cantidadOperaciones"`
	BuyerSides            int     `json:"puntasCompradoras"`
	SellerSides           int     `json:"puntasVendedoras"`
	Tips                  int     `json:"puntasTotales"`
	TotalReservationValue float64 `json:"montoTotalOperaciones"`
	AverageOperationValue float64 `json:"promedioValorOperacion"`
	AverageDaysToSell     float64 `json:"promedioDiasVenta"`
}
