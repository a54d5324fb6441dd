package handler

import "github.com/mavera/backoffice/internal/core/domain"

type roleResponse struct {
	Role        domain.Role         `json:"role"`
	Label       string              `json:"label"`
	Permissions []domain.Permission `json:"permissions"`
}

type rolesResponse struct {
	Roles []roleResponse `json:"roles"`
}

type permissionsResponse struct {
	Role        domain.Role         `json:"role"`
	Roles       []domain.Role       `json:"roles"`
	Permissions []domain.Permission `json:"permissions"`
}

type permissionCheckResponse struct {
	Permission domain.Permission `json:"permission"`
	Granted    bool              `json:"granted"`
}

type navigationResponse struct {
	Role  domain.Role      `json:"role"`
	Items []domain.NavItem `json:"items"`
}

type dashboardResponse struct {
	Widgets []domain.Widget `json:"widgets"`
}
