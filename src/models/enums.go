package models

// OperationStatus is the lifecycle state of a transaction. StatusAll is only
// meaningful as a filter value.
type OperationStatus string

const (
	StatusOpen   OperationStatus = "En Curso"
	StatusClosed OperationStatus = "Cerrada"
	StatusFallen OperationStatus = "Caída"
	StatusAll    OperationStatus = "all"
)

// ParseStatus maps a filter value to a status. Empty and "Todas" map to StatusAll.
func ParseStatus(s string) (OperationStatus, bool) {
	switch s {
	case "", string(StatusAll), "Todas", "todas":
		return StatusAll, true
	case string(StatusOpen), "open":
		return StatusOpen, true
	case string(StatusClosed), "closed":
		return StatusClosed, true
	case string(StatusFallen), "Caida", "fallen":
		return StatusFallen, true
	}
	return "", false
}

type OperationType string

const (
	TypeSale                  OperationType = "Venta"
	TypePurchase              OperationType = "Compra"
	TypeRentalTraditional     OperationType = "Alquiler Tradicional"
	TypeRentalTemporary       OperationType = "Alquiler Temporal"
	TypeRentalCommercial      OperationType = "Alquiler Comercial"
	TypeBusinessGoodwill      OperationType = "Fondo de Comercio"
	TypeRealEstateDevelopment OperationType = "Desarrollo Inmobiliario"
	TypeGarage                OperationType = "Cochera"
	TypeSubdivision           OperationType = "Loteamiento"
	TypeDevelopmentLots       OperationType = "Lotes Para Desarrollos"
	TypeDevelopment           OperationType = "Desarrollo"
)

// IsRental reports whether the type belongs to the rental category.
func (t OperationType) IsRental() bool {
	switch t {
	case TypeRentalTraditional, TypeRentalTemporary, TypeRentalCommercial:
		return true
	}
	return false
}

// Group is the reporting label an operation type is rolled into.
func (t OperationType) Group() string {
	switch t {
	case TypeDevelopment, TypeRealEstateDevelopment:
		return string(TypeRealEstateDevelopment)
	case TypeSubdivision, TypeDevelopmentLots:
		return "Lotes"
	case "":
		return "Sin tipo"
	}
	return string(t)
}

type Role string

const (
	RoleTeamLeaderBroker Role = "team_leader_broker"
	RoleAdvisor          Role = "agente_asesor"
	RoleAdmin            Role = "admin"
	RoleOfficeAdmin      Role = "office_admin"
	RoleBackoffice       Role = "backoffice"
)

func (r Role) IsTeamLeader() bool { return r == RoleTeamLeaderBroker }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTeamLeaderBroker, RoleAdvisor, RoleAdmin, RoleOfficeAdmin, RoleBackoffice:
		return true
	}
	return false
}
