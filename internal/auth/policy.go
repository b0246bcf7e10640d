package auth

import (
	"errors"

	"retaildash/internal/database"
)

var ErrBranchForbidden = errors.New("branch access denied")

// AuthorizeBranch applies branch scoping: admins pass unconditionally,
// everyone else must be assigned to the exact branch. Callers resolve the
// branch code first, so an unknown code reports not-found, not forbidden.
func AuthorizeBranch(claims *Claims, branch *database.Branch) error {
	if claims.Role == database.RoleAdmin {
		return nil
	}
	if claims.BranchID != nil && *claims.BranchID == branch.ID {
		return nil
	}
	return ErrBranchForbidden
}
