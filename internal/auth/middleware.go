package auth

import (
	"net/http"

	"storefront-api/internal/dto"

	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// The SPA sends the bearer credential in a bare "token" header.
const tokenHeader = "token"

// RequireUser authenticates the request and stashes the verified identity in
// the echo context. Auth failures answer with the uniform envelope, not a 401.
func RequireUser(v *Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := v.Authenticate(c.Request().Header.Get(tokenHeader))
			if err != nil {
				return c.JSON(http.StatusOK, dto.Fail("Not Authorized. Login Again"))
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// RequireAdmin additionally demands the admin role on the verified identity.
func RequireAdmin(v *Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := v.Authenticate(c.Request().Header.Get(tokenHeader))
			if err != nil {
				return c.JSON(http.StatusOK, dto.Fail("Not Authorized. Login Again"))
			}
			if identity.Role != RoleAdmin {
				return c.JSON(http.StatusOK, dto.Fail("Not Authorized. Admin Access Required"))
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by the middleware, nil when the
// route ran without one.
func IdentityFrom(c echo.Context) *Identity {
	identity, _ := c.Get(identityKey).(*Identity)
	return identity
}
