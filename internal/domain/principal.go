package domain

import "context"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Principal is the authenticated user attached to a request context.
type Principal struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// CanReviewWorkflows reports whether the principal may approve or reject
// workflow entities and see unscoped listings.
func (p Principal) CanReviewWorkflows() bool {
	return p.Role == RoleAdmin || p.Role == RoleManager
}

// PrincipalSource resolves a token subject into a live principal.
// Implemented by the user repository.
type PrincipalSource interface {
	PrincipalByID(ctx context.Context, id string) (Principal, error)
}
