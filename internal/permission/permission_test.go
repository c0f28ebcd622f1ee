package permission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	userDomain "github.com/allisson/tracker/internal/user/domain"
)

func actor(role userDomain.Role) Actor {
	return Actor{ID: uuid.Must(uuid.NewV7()), Role: role, IsActive: true}
}

func TestCanPerform_Projects(t *testing.T) {
	developer := actor(userDomain.RoleDeveloper)
	manager := actor(userDomain.RoleManager)
	admin := actor(userDomain.RoleAdmin)

	t.Run("create project", func(t *testing.T) {
		assert.False(t, CanPerform(developer, CreateProject, Resource{}))
		assert.True(t, CanPerform(manager, CreateProject, Resource{}))
		assert.True(t, CanPerform(admin, CreateProject, Resource{}))
	})

	t.Run("edit and archive project", func(t *testing.T) {
		owned := Resource{ProjectCreatedBy: manager.ID}
		foreign := Resource{ProjectCreatedBy: uuid.Must(uuid.NewV7())}

		for _, action := range []Action{EditProject, ArchiveProject} {
			assert.True(t, CanPerform(admin, action, foreign), "admin edits any project")
			assert.True(t, CanPerform(manager, action, owned), "manager edits own project")
			assert.False(t, CanPerform(manager, action, foreign), "manager cannot edit foreign project")
			assert.False(t, CanPerform(developer, action, Resource{ProjectCreatedBy: developer.ID}),
				"developer cannot edit even an owned project")
		}
	})
}

func TestCanPerform_Issues(t *testing.T) {
	developer := actor(userDomain.RoleDeveloper)
	manager := actor(userDomain.RoleManager)
	admin := actor(userDomain.RoleAdmin)

	t.Run("create issue and add comment", func(t *testing.T) {
		for _, action := range []Action{CreateIssue, AddComment} {
			assert.True(t, CanPerform(developer, action, Resource{}))
			assert.True(t, CanPerform(manager, action, Resource{}))
			assert.False(t, CanPerform(developer, action, Resource{ProjectArchived: true}),
				"archived project blocks %s", action)
			assert.False(t, CanPerform(admin, action, Resource{ProjectArchived: true}),
				"archived project blocks %s even for admin", action)
		}
	})

	t.Run("edit issue and change status", func(t *testing.T) {
		reporter := actor(userDomain.RoleDeveloper)
		assignee := actor(userDomain.RoleDeveloper)
		resource := Resource{IssueReporter: reporter.ID, IssueAssignee: &assignee.ID}

		for _, action := range []Action{EditIssue, ChangeIssueStatus} {
			assert.False(t, CanPerform(developer, action, resource),
				"uninvolved developer is denied %s", action)
			assert.True(t, CanPerform(reporter, action, resource))
			assert.True(t, CanPerform(assignee, action, resource))
			assert.True(t, CanPerform(manager, action, resource))
			assert.True(t, CanPerform(admin, action, resource))
		}

		unassigned := Resource{IssueReporter: reporter.ID}
		assert.False(t, CanPerform(developer, EditIssue, unassigned))
	})

	t.Run("reassign issue", func(t *testing.T) {
		reporter := actor(userDomain.RoleDeveloper)
		assignee := actor(userDomain.RoleDeveloper)
		resource := Resource{IssueReporter: reporter.ID, IssueAssignee: &assignee.ID}

		assert.True(t, CanPerform(reporter, ReassignIssue, resource))
		assert.False(t, CanPerform(assignee, ReassignIssue, resource),
			"assignee may not hand the issue to someone else")
		assert.True(t, CanPerform(manager, ReassignIssue, resource))
		assert.True(t, CanPerform(admin, ReassignIssue, resource))
	})
}

func TestCanPerform_Comments(t *testing.T) {
	author := actor(userDomain.RoleDeveloper)
	admin := actor(userDomain.RoleAdmin)
	resource := Resource{CommentAuthor: author.ID}

	assert.True(t, CanPerform(author, EditComment, resource))
	assert.False(t, CanPerform(admin, EditComment, resource),
		"no role override for comment editing")
	assert.False(t, CanPerform(actor(userDomain.RoleManager), EditComment, resource))
}

func TestCanPerform_Defaults(t *testing.T) {
	t.Run("inactive actor is denied everything", func(t *testing.T) {
		inactive := Actor{ID: uuid.Must(uuid.NewV7()), Role: userDomain.RoleAdmin, IsActive: false}

		assert.False(t, CanPerform(inactive, CreateProject, Resource{}))
		assert.False(t, CanPerform(inactive, CreateIssue, Resource{}))
		assert.False(t, CanPerform(inactive, EditComment, Resource{CommentAuthor: inactive.ID}))
	})

	t.Run("unknown action is denied", func(t *testing.T) {
		assert.False(t, CanPerform(actor(userDomain.RoleAdmin), Action("issue:delete"), Resource{}))
	})
}
