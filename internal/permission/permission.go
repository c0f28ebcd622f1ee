// Package permission implements the role and ownership based permission
// evaluator. It is a pure decision function: no I/O, no clock, no stores.
package permission

import (
	"github.com/google/uuid"

	userDomain "github.com/allisson/tracker/internal/user/domain"
)

// Action is the closed set of operations the evaluator can decide on.
type Action string

const (
	// CreateProject requires the manager or admin role.
	CreateProject Action = "project:create"

	// EditProject and ArchiveProject allow admins, or the manager who
	// created the project.
	EditProject    Action = "project:edit"
	ArchiveProject Action = "project:archive"

	// CreateIssue and AddComment are open to any active user, unless the
	// project is archived.
	CreateIssue Action = "issue:create"
	AddComment  Action = "comment:create"

	// EditIssue and ChangeIssueStatus allow managers, admins, the reporter,
	// and the assignee.
	EditIssue         Action = "issue:edit"
	ChangeIssueStatus Action = "issue:change_status"

	// ReassignIssue allows managers, admins, and the reporter.
	ReassignIssue Action = "issue:reassign"

	// EditComment allows only the comment's author. There is no role
	// override: even an admin may not edit another author's comment.
	EditComment Action = "comment:edit"
)

// Actor is the identity asking for permission.
type Actor struct {
	ID       uuid.UUID
	Role     userDomain.Role
	IsActive bool
}

// Resource carries the ownership and state facts the rules need. Only the
// fields relevant to the action being checked are consulted; the rest may be
// zero values. It is computed per request and never persisted.
type Resource struct {
	// ProjectCreatedBy is the project creator, for project edit/archive.
	ProjectCreatedBy uuid.UUID

	// ProjectArchived blocks issue creation and commenting.
	ProjectArchived bool

	// IssueReporter and IssueAssignee gate issue edit/status/reassign.
	// IssueAssignee is nil for unassigned issues.
	IssueReporter uuid.UUID
	IssueAssignee *uuid.UUID

	// CommentAuthor gates comment editing.
	CommentAuthor uuid.UUID
}

// CanPerform decides whether the actor may perform the action in the given
// resource context. The function is total: unrecognized actions are denied.
// Role grants and ownership overrides are exactly the documented table; no
// transitive "admin can do everything" shortcut exists.
func CanPerform(actor Actor, action Action, resource Resource) bool {
	if !actor.IsActive {
		return false
	}

	switch action {
	case CreateProject:
		return isManagerOrAdmin(actor.Role)

	case EditProject, ArchiveProject:
		if actor.Role == userDomain.RoleAdmin {
			return true
		}
		return actor.Role == userDomain.RoleManager && actor.ID == resource.ProjectCreatedBy

	case CreateIssue, AddComment:
		return !resource.ProjectArchived

	case EditIssue, ChangeIssueStatus:
		if isManagerOrAdmin(actor.Role) {
			return true
		}
		if actor.ID == resource.IssueReporter {
			return true
		}
		return resource.IssueAssignee != nil && actor.ID == *resource.IssueAssignee

	case ReassignIssue:
		if isManagerOrAdmin(actor.Role) {
			return true
		}
		return actor.ID == resource.IssueReporter

	case EditComment:
		return actor.ID == resource.CommentAuthor
	}

	// Default deny for unknown actions.
	return false
}

func isManagerOrAdmin(role userDomain.Role) bool {
	return role == userDomain.RoleManager || role == userDomain.RoleAdmin
}
