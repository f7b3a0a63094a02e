package auth

import (
	"context"
	"fmt"
	"slices"
)

const (
	RoleOperator = "operator"
	RoleAuditor  = "auditor"
)

const (
	PermDSRProcess  = "dsr.process"
	PermDSRExport   = "dsr.export"
	PermBreachRead  = "breach.read"
	PermReportsRead = "reports.read"
	PermAuditRead   = "audit.read"
)

var allPermissions = []string{
	PermDSRProcess,
	PermDSRExport,
	PermBreachRead,
	PermReportsRead,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleOperator: {
		PermDSRProcess,
		PermDSRExport,
		PermBreachRead,
		PermReportsRead,
	},
	RoleAuditor: {
		PermBreachRead,
		PermReportsRead,
		PermAuditRead,
	},
}

func KnownRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// StaticPermissions resolves permissions from RolePermissions.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	if !slices.Contains(allPermissions, permission) {
		return false, fmt.Errorf("%w: %s", ErrUnknownPermission, permission)
	}
	for _, perm := range RolePermissions[role] {
		if perm == permission {
			return true, nil
		}
	}
	return false, nil
}
