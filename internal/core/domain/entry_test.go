package domain_test

import (
	"testing"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestEntryStatusCanTransition(t *testing.T) {
	allowed := []struct {
		from, to domain.EntryStatus
	}{
		{domain.Draft, domain.PendingApproval},
		{domain.Draft, domain.Rejected},
		{domain.PendingApproval, domain.Approved},
		{domain.PendingApproval, domain.Rejected},
		{domain.Approved, domain.Posted},
		{domain.Posted, domain.Voided},
	}
	for _, tt := range allowed {
		assert.True(t, tt.from.CanTransition(tt.to), "%s -> %s should be legal", tt.from, tt.to)
	}

	forbidden := []struct {
		from, to domain.EntryStatus
	}{
		{domain.Draft, domain.Approved},
		{domain.Draft, domain.Posted},
		{domain.PendingApproval, domain.Posted},
		{domain.Approved, domain.Rejected},
		{domain.Approved, domain.Draft},
		{domain.Posted, domain.Draft},
		{domain.Rejected, domain.PendingApproval},
		{domain.Voided, domain.Posted},
	}
	for _, tt := range forbidden {
		assert.False(t, tt.from.CanTransition(tt.to), "%s -> %s should be illegal", tt.from, tt.to)
	}
}

func TestEntryStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.Rejected.IsTerminal())
	assert.True(t, domain.Voided.IsTerminal())
	assert.False(t, domain.Draft.IsTerminal())
	assert.False(t, domain.Posted.IsTerminal())
}
