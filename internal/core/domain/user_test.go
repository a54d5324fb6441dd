package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Sara Salem":           "SS",
		"noura abdullah fahad": "NF",
		"Admin":                "A",
		"   ":                  "",
		"":                     "",
		"عبدالله خالد":         "عخ",
	}
	for name, want := range cases {
		assert.Equal(t, want, Initials(name), name)
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Finance_Manager ")
	require.NoError(t, err)
	assert.Equal(t, RoleFinanceManager, r)
	assert.Equal(t, "Finance Manager", r.Label())

	_, err = ParseRole("owner")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserProfile_JSONShape(t *testing.T) {
	u := &UserProfile{
		ID:                "u-002",
		Name:              "Sara Salem",
		Role:              RoleSalesAgent,
		CustomPermissions: []Permission{PermFinanceViewContracts},
		Avatar:            "SS",
	}
	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u-002","name":"Sara Salem","role":"sales_agent","customPermissions":["finance.view_contracts"],"avatar":"SS"}`, string(raw))

	var back *UserProfile
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, u.Equal(back))
}

func TestUserProfile_AssignedRoles(t *testing.T) {
	assert.Equal(t, []Role{RoleCoordinator}, (&UserProfile{Role: RoleCoordinator}).AssignedRoles())
	assert.Equal(t, []Role{RoleSalesAgent, RoleCallCenter},
		(&UserProfile{Role: RoleSalesAgent, Roles: []Role{RoleSalesAgent, RoleCallCenter}}).AssignedRoles())
}

func TestUserProfile_Clone(t *testing.T) {
	var nilUser *UserProfile
	assert.Nil(t, nilUser.Clone())

	u := &UserProfile{ID: "1", Roles: []Role{RoleCoordinator}, CustomPermissions: []Permission{PermReportsView}}
	c := u.Clone()
	c.Roles[0] = RoleSuperAdmin
	c.CustomPermissions[0] = PermAdminViewAudit
	assert.Equal(t, RoleCoordinator, u.Roles[0])
	assert.Equal(t, PermReportsView, u.CustomPermissions[0])
}
