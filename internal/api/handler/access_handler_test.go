package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mavera/backoffice/internal/api/middleware"
	"github.com/mavera/backoffice/internal/core/domain"
)

func accessContext(e *echo.Echo, target string, user *domain.UserProfile) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	if user != nil {
		c.Set(middleware.ContextKeyUser, user)
	}
	return c, rec
}

func TestAccessHandler_Roles(t *testing.T) {
	e := newEcho()
	c, rec := accessContext(e, "/v1/access/roles", salesUser)

	if err := NewAccessHandler().Roles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp rolesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Roles) != 5 {
		t.Fatalf("expected 5 roles, got %d", len(resp.Roles))
	}
	if resp.Roles[0].Role != domain.RoleSuperAdmin || len(resp.Roles[0].Permissions) != len(domain.AllPermissions()) {
		t.Fatalf("super admin entry incomplete: %+v", resp.Roles[0])
	}
}

func TestAccessHandler_Permissions(t *testing.T) {
	e := newEcho()
	c, rec := accessContext(e, "/v1/access/permissions", salesUser)

	if err := NewAccessHandler().Permissions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp permissionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := domain.EffectivePermissions(salesUser)
	if len(resp.Permissions) != len(want) {
		t.Fatalf("expected %d permissions, got %d", len(want), len(resp.Permissions))
	}
	for i := range want {
		if resp.Permissions[i] != want[i] {
			t.Fatalf("permission %d: expected %s, got %s", i, want[i], resp.Permissions[i])
		}
	}
}

func TestAccessHandler_CheckPermission(t *testing.T) {
	e := newEcho()
	h := NewAccessHandler()

	cases := []struct {
		perm    string
		granted bool
	}{
		{"leads.view", true},
		{"finance.view_contracts", true},
		{"admin.manage_users", false},
	}
	for _, tc := range cases {
		c, rec := accessContext(e, "/v1/access/permissions/"+tc.perm, salesUser)
		c.SetParamNames("permission")
		c.SetParamValues(tc.perm)

		if err := h.CheckPermission(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.perm, err)
		}
		var resp permissionCheckResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Granted != tc.granted {
			t.Fatalf("%s: expected granted=%v", tc.perm, tc.granted)
		}
	}
}

func TestAccessHandler_CheckPermission_Unknown(t *testing.T) {
	e := newEcho()
	c, _ := accessContext(e, "/v1/access/permissions/everything", salesUser)
	c.SetParamNames("permission")
	c.SetParamValues("everything")

	if err := NewAccessHandler().CheckPermission(c); !errors.Is(err, domain.ErrInvalidPermission) {
		t.Fatalf("expected ErrInvalidPermission, got %v", err)
	}
}

func TestAccessHandler_Navigation(t *testing.T) {
	e := newEcho()
	c, rec := accessContext(e, "/v1/navigation", &domain.UserProfile{ID: "u-005", Role: domain.RoleCoordinator})

	if err := NewAccessHandler().Navigation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Role  string           `json:"role"`
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := []string{"dashboard", "bookings", "contracts", "vendors"}
	if len(resp.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(resp.Items))
	}
	for i, key := range want {
		if resp.Items[i]["key"] != key {
			t.Fatalf("item %d: expected %s, got %v", i, key, resp.Items[i]["key"])
		}
		if _, leaked := resp.Items[i]["roles"]; leaked {
			t.Fatalf("allowed roles must not be serialized")
		}
	}
}

func TestAccessHandler_Dashboard(t *testing.T) {
	e := newEcho()
	c, rec := accessContext(e, "/v1/dashboard", &domain.UserProfile{ID: "u-003", Role: domain.RoleCallCenter})

	if err := NewAccessHandler().Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Widgets) != 2 || resp.Widgets[0].Key != "new-leads" || resp.Widgets[1].Key != "upcoming-events" {
		t.Fatalf("unexpected widgets: %+v", resp.Widgets)
	}
}

func TestAccessHandler_RequiresSession(t *testing.T) {
	e := newEcho()
	h := NewAccessHandler()
	for name, fn := range map[string]echo.HandlerFunc{
		"permissions": h.Permissions,
		"navigation":  h.Navigation,
		"dashboard":   h.Dashboard,
	} {
		c, _ := accessContext(e, "/", nil)
		err := fn(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %v", name, err)
		}
	}
}
