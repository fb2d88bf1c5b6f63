package entity

import "github.com/jmaldonado/hub-admin-api/internal/domain/types"

// Menu es un ítem de navegación disponible para los usuarios de un hub.
type Menu struct {
	ID    types.MenuID
	Name  types.MenuName
	URL   types.MenuURL
	HubID types.HubID
}

// NewMenu datos validados para crear un menú.
type NewMenu struct {
	Name  types.MenuName
	URL   types.MenuURL
	HubID types.HubID
}

// NewMenuFromInput valida la entrada cruda antes de construir el payload.
func NewMenuFromInput(name, url string, hubID int32) (*NewMenu, error) {
	menuName, err := types.NewMenuName(name)
	if err != nil {
		return nil, err
	}
	menuURL, err := types.NewMenuURL(url)
	if err != nil {
		return nil, err
	}
	hub, err := types.NewHubID(hubID)
	if err != nil {
		return nil, err
	}
	return &NewMenu{Name: menuName, URL: menuURL, HubID: hub}, nil
}
