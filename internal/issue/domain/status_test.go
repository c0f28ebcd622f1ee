package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/tracker/internal/permission"
	userDomain "github.com/allisson/tracker/internal/user/domain"
)

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusResolved, false},
		{StatusOpen, StatusClosed, false},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusOpen, false},
		{StatusResolved, StatusClosed, true},
		{StatusResolved, StatusReopened, true},
		{StatusResolved, StatusInProgress, false},
		{StatusClosed, StatusReopened, true},
		{StatusClosed, StatusOpen, false},
		{StatusReopened, StatusInProgress, true},
		{StatusReopened, StatusClosed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed, StatusReopened} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("cancelled").Valid())
}

func TestPriorityWeight(t *testing.T) {
	assert.Less(t, PriorityLow.Weight(), PriorityMedium.Weight())
	assert.Less(t, PriorityMedium.Weight(), PriorityHigh.Weight())
	assert.Less(t, PriorityHigh.Weight(), PriorityCritical.Weight())
	assert.Equal(t, 0, Priority("urgent").Weight())
}

func TestCanChangeStatus(t *testing.T) {
	reporter := uuid.Must(uuid.NewV7())
	assignee := uuid.Must(uuid.NewV7())
	bystander := uuid.Must(uuid.NewV7())

	resource := permission.Resource{
		IssueReporter: reporter,
		IssueAssignee: &assignee,
	}

	developer := func(id uuid.UUID) permission.Actor {
		return permission.Actor{ID: id, Role: userDomain.RoleDeveloper, IsActive: true}
	}

	t.Run("AssigneeMayResolve", func(t *testing.T) {
		assert.True(t, CanChangeStatus(developer(assignee), resource, StatusInProgress, StatusResolved))
	})

	t.Run("ReporterMayReopen", func(t *testing.T) {
		assert.True(t, CanChangeStatus(developer(reporter), resource, StatusClosed, StatusReopened))
	})

	t.Run("BystanderDenied", func(t *testing.T) {
		assert.False(t, CanChangeStatus(developer(bystander), resource, StatusInProgress, StatusResolved))
	})

	t.Run("InvalidTransitionDeniedEvenForManager", func(t *testing.T) {
		manager := permission.Actor{ID: bystander, Role: userDomain.RoleManager, IsActive: true}
		assert.False(t, CanChangeStatus(manager, resource, StatusOpen, StatusClosed))
	})

	t.Run("InactiveAssigneeDenied", func(t *testing.T) {
		actor := developer(assignee)
		actor.IsActive = false
		assert.False(t, CanChangeStatus(actor, resource, StatusInProgress, StatusResolved))
	})
}
