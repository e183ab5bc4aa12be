package middleware

import (
	"github.com/labstack/echo/v4"
)

// VersionMiddleware stamps responses with the API and build versions.
type VersionMiddleware struct {
	buildVersion string
}

func NewVersionMiddleware(buildVersion string) *VersionMiddleware {
	return &VersionMiddleware{buildVersion: buildVersion}
}

// VersionHeader adds version information to response headers
func (vm *VersionMiddleware) VersionHeader(apiVersion string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", apiVersion)
			c.Response().Header().Set("X-Build-Version", vm.buildVersion)
			c.Set("api_version", apiVersion)
			return next(c)
		}
	}
}
