package domain

import "time"

// Parameter is a row of the shared lookup table. Statuses, person types,
// economic activities, income-statement periods and dashboard levels are all
// parameters identified by a (type, code) pair.
type Parameter struct {
	ID        int32     `json:"id"`
	Type      string    `json:"type"`
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	ParentID  *int32    `json:"parentId,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Well-known parameter codes.
const (
	ParameterCodeStudyCompleted = "estudioRealizado"
)

// Parameter types.
const (
	ParameterTypeStudyStatus      = "estadoEstudio"
	ParameterTypePersonType       = "tipoPersona"
	ParameterTypeEconomicActivity = "actividadEconomica"
	ParameterTypeIncomePeriod     = "periodoEstadoResultados"
	ParameterTypeDashboardLevel   = "nivelDashboard"
)

type ParameterFilters struct {
	Type       string
	Search     string
	OnlyActive bool
}

type ParameterRepository interface {
	GetByID(id int32) (*Parameter, error)
	FindByCode(code string) (*Parameter, error)
	FindByTypeAndCode(paramType, code string) (*Parameter, error)
	GetAll(filters *ParameterFilters) ([]*Parameter, error)
	// LabelsFor resolves labels for a batch of parameter ids. Missing ids are
	// simply absent from the returned map, never an error.
	LabelsFor(ids []int32) (map[int32]string, error)
}
