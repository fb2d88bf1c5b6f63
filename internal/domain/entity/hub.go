package entity

import (
	"time"

	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// Hub representa un tenant del sistema: agrupa usuarios y menús.
type Hub struct {
	ID        types.HubID
	Name      types.HubName
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewHub datos validados para crear un hub.
type NewHub struct {
	Name types.HubName
}

// NewHubFromInput valida la entrada cruda antes de construir el payload.
func NewHubFromInput(name string) (*NewHub, error) {
	hubName, err := types.NewHubName(name)
	if err != nil {
		return nil, err
	}
	return &NewHub{Name: hubName}, nil
}
