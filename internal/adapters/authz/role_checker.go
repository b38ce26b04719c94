package authz

import (
	"context"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
)

// Role names carried by the auth token.
const (
	RoleApprover  = "approver"
	RolePoster    = "poster"
	RoleVoider    = "voider"
	RoleTreasurer = "treasurer" // Treasurer holds every entry capability.
)

// roleChecker authorizes state transitions from the roles in the request
// context. Submitting and rejecting are open to any authenticated actor;
// approval, posting and voiding each require a dedicated role.
type roleChecker struct{}

// NewRoleChecker creates the role-based capability checker.
func NewRoleChecker() portssvc.CapabilityChecker {
	return &roleChecker{}
}

var _ portssvc.CapabilityChecker = (*roleChecker)(nil)

func (c *roleChecker) CanTransition(ctx context.Context, actorID string, entryID string, from, to domain.EntryStatus) (bool, error) {
	roles := middleware.GetRolesFromCtx(ctx)

	var required string
	switch to {
	case domain.Approved:
		required = RoleApprover
	case domain.Posted:
		required = RolePoster
	case domain.Voided:
		required = RoleVoider
	default:
		return true, nil
	}

	for _, role := range roles {
		if role == required || role == RoleTreasurer {
			return true, nil
		}
	}
	return false, nil
}
