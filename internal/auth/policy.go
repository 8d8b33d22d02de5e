package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Scopes granted by the identity service for the workout API.
const (
	ScopeWorkoutsWrite = "workouts:write"
	ScopeWorkoutsRead  = "workouts:read"
)

// ErrForbidden is returned when the caller lacks every scope accepted for an action.
var ErrForbidden = errors.New("insufficient scope")

// Action is a workout API operation guarded by scopes.
type Action int

const (
	// ActionPreview computes a summary without storing it.
	ActionPreview Action = iota
	// ActionRecord stores a summary and publishes it.
	ActionRecord
	// ActionRead fetches or lists stored summaries.
	ActionRead
)

// acceptedScopes lists, per action, the scopes that each grant it.
// workouts:write implies read access.
var acceptedScopes = map[Action][]string{
	ActionPreview: {ScopeWorkoutsRead, ScopeWorkoutsWrite},
	ActionRecord:  {ScopeWorkoutsWrite},
	ActionRead:    {ScopeWorkoutsRead, ScopeWorkoutsWrite},
}

func (a Action) String() string {
	switch a {
	case ActionPreview:
		return "preview workout"
	case ActionRecord:
		return "record workout"
	case ActionRead:
		return "read workouts"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Allows reports whether the claims grant the action.
func (c *Claims) Allows(a Action) bool {
	for _, scope := range acceptedScopes[a] {
		if c.HasScope(scope) {
			return true
		}
	}
	return false
}

// Authorize returns the claims stored on ctx when they grant the action. It
// fails with ErrMissingToken when the request was not authenticated and with
// ErrForbidden when the scopes are insufficient.
func Authorize(ctx context.Context, a Action) (*Claims, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return nil, ErrMissingToken
	}
	if !claims.Allows(a) {
		return nil, fmt.Errorf("%w: %s requires %s", ErrForbidden, a, strings.Join(acceptedScopes[a], " or "))
	}
	return claims, nil
}
