package context

import (
	"github.com/labstack/echo/v4"

	"storerating/internal/domain/entity"
)

// SetIdentity binds a verified identity to the request.
func SetIdentity(c echo.Context, identity *entity.Identity) {
	c.Set(string(keyIdentity), identity)
}

// GetIdentity returns the identity bound by the authorization gate.
func GetIdentity(c echo.Context) (*entity.Identity, bool) {
	identity, ok := c.Get(string(keyIdentity)).(*entity.Identity)

	return identity, ok && identity != nil
}
