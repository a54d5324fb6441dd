package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mavera/backoffice/internal/core/domain"
)

// AccessHandler serves the role catalog, permission checks, the sidebar and
// the dashboard for the signed-in user. Everything is resolved from the
// static tables and the session profile.
type AccessHandler struct{}

func NewAccessHandler() *AccessHandler {
	return &AccessHandler{}
}

// Roles lists every role with its permissions.
//
// @Summary      Role catalog
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  rolesResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/access/roles [get]
func (h *AccessHandler) Roles(c echo.Context) error {
	roles := domain.AllRoles()
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleResponse{
			Role:        r,
			Label:       r.Label(),
			Permissions: domain.PermissionsForRole(r),
		})
	}
	return c.JSON(http.StatusOK, rolesResponse{Roles: out})
}

// Permissions lists the effective permissions of the signed-in user.
//
// @Summary      Effective permissions
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  permissionsResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/access/permissions [get]
func (h *AccessHandler) Permissions(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, permissionsResponse{
		Role:        user.Role,
		Roles:       user.AssignedRoles(),
		Permissions: domain.EffectivePermissions(user),
	})
}

// CheckPermission reports whether the signed-in user holds one permission.
// Tags outside the catalog are rejected unless granted as a custom override.
//
// @Summary      Check a permission
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Param        permission  path      string  true  "Permission tag, e.g. leads.view"
// @Success      200         {object}  permissionCheckResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /v1/access/permissions/{permission} [get]
func (h *AccessHandler) CheckPermission(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	perm := domain.Permission(c.Param("permission"))
	granted := domain.HasPermission(user, perm)
	if !granted && !perm.Known() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPermission, perm)
	}
	return c.JSON(http.StatusOK, permissionCheckResponse{Permission: perm, Granted: granted})
}

// Navigation returns the sidebar filtered by the primary role.
//
// @Summary      Sidebar navigation
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  navigationResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/navigation [get]
func (h *AccessHandler) Navigation(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, navigationResponse{
		Role:  user.Role,
		Items: domain.NavigationFor(user.Role),
	})
}

// Dashboard returns the widgets the signed-in user may see.
//
// @Summary      Dashboard widgets
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dashboardResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *AccessHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{Widgets: domain.DashboardFor(user)})
}
