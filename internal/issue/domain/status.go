// Package domain defines the issue workflow: the status state machine and
// priority ordering. Whether a transition is structurally valid is decided
// here; who may perform it is decided by the permission evaluator.
package domain

import (
	"github.com/allisson/tracker/internal/permission"
)

// Status is the closed set of issue workflow states.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusReopened   Status = "reopened"
)

// validTransitions is the workflow's transition table:
//
//	open -> in_progress -> resolved -> closed
//	resolved, closed -> reopened -> in_progress
var validTransitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress},
	StatusInProgress: {StatusResolved},
	StatusResolved:   {StatusClosed, StatusReopened},
	StatusClosed:     {StatusReopened},
	StatusReopened:   {StatusInProgress},
}

// Valid reports whether the status is one of the known workflow states.
func (s Status) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether the workflow permits moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// CanChangeStatus reports whether the actor may move an issue between the two
// workflow states. Both gates must pass: the transition has to be structurally
// valid, and the actor needs the change-status grant for this issue.
func CanChangeStatus(actor permission.Actor, rc permission.Resource, from, to Status) bool {
	if !from.CanTransitionTo(to) {
		return false
	}
	return permission.CanPerform(actor, permission.ChangeIssueStatus, rc)
}

// Priority orders issues by urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Weight returns the sort weight of the priority; higher is more urgent.
// Unknown priorities sort lowest.
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	}
	return 0
}
