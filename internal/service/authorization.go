package service

import (
	"perf_eval_backend/internal/model"
)

// Action is the access class an actor requests against an assignment.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// Actor is the authenticated identity an authorization decision runs for.
type Actor struct {
	ID   uint
	Role model.UserRole
}

// CanAct is the assignment authorization gate. Every resource hanging off an
// assignment (results, comments, signatures, attachments) derives its access
// from membership in that assignment, not from the resource itself.
//
// Admins are always permitted. An evaluator must be the assignment's
// evaluator, an evaluatee its evaluatee; writes additionally require the
// assignment to be active. Pure decision, no side effects; callers translate
// a denial into 404 so non-members cannot probe for existence.
func CanAct(actor Actor, assignment *model.Assignment, action Action) bool {
	if assignment == nil {
		return false
	}

	switch actor.Role {
	case model.Admin:
		return true
	case model.Evaluator:
		if assignment.EvaluatorID != actor.ID {
			return false
		}
	case model.Evaluatee:
		if assignment.EvaluateeID != actor.ID {
			return false
		}
	default:
		return false
	}

	if action == ActionWrite && !assignment.IsActive {
		return false
	}
	return true
}
