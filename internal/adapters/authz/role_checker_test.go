package authz_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/adapters/authz"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	checker := authz.NewRoleChecker()
	actorID := uuid.NewString()
	entryID := uuid.NewString()

	tests := []struct {
		name    string
		roles   []string
		from    domain.EntryStatus
		to      domain.EntryStatus
		allowed bool
	}{
		{"anyone may submit", nil, domain.Draft, domain.PendingApproval, true},
		{"anyone may reject", nil, domain.PendingApproval, domain.Rejected, true},
		{"approve needs approver", nil, domain.PendingApproval, domain.Approved, false},
		{"approver may approve", []string{authz.RoleApprover}, domain.PendingApproval, domain.Approved, true},
		{"approver may not post", []string{authz.RoleApprover}, domain.Approved, domain.Posted, false},
		{"poster may post", []string{authz.RolePoster}, domain.Approved, domain.Posted, true},
		{"voider may void", []string{authz.RoleVoider}, domain.Posted, domain.Voided, true},
		{"poster may not void", []string{authz.RolePoster}, domain.Posted, domain.Voided, false},
		{"treasurer may approve", []string{authz.RoleTreasurer}, domain.PendingApproval, domain.Approved, true},
		{"treasurer may post", []string{authz.RoleTreasurer}, domain.Approved, domain.Posted, true},
		{"treasurer may void", []string{authz.RoleTreasurer}, domain.Posted, domain.Voided, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := middleware.ContextWithActor(context.Background(), actorID, tt.roles)
			allowed, err := checker.CanTransition(ctx, actorID, entryID, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}
