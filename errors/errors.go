// Package errors defines the error taxonomy shared by every layer.
// Callers classify failures with errors.Is against these sentinels.
package errors

import "fmt"

var (
	// ErrAuthentication covers bad, missing or expired credentials.
	ErrAuthentication = fmt.Errorf("authentication failed")
	// ErrAuthorization covers authenticated callers lacking permission.
	ErrAuthorization = fmt.Errorf("not authorized")
	// ErrValidation covers malformed input.
	ErrValidation = fmt.Errorf("invalid input")
	// ErrConflict covers state constraint violations.
	ErrConflict = fmt.Errorf("conflicting state")
	// ErrNotFound covers absent entities.
	ErrNotFound = fmt.Errorf("not found")
	// ErrDecryption covers envelope verification failures.
	ErrDecryption = fmt.Errorf("decryption failed")

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuthentication)
	ErrUserAlreadyExists  = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrInvalidPassword    = fmt.Errorf("%w: password does not meet complexity rules", ErrValidation)
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	ErrNotTeamMember = fmt.Errorf("%w: not a team member", ErrAuthorization)
	ErrNotTeamLeader = fmt.Errorf("%w: not a team leader", ErrAuthorization)
	// ErrLastLeader rejects removing the only remaining leader of a team.
	ErrLastLeader = fmt.Errorf("%w: cannot remove the last leader", ErrConflict)

	ErrWorkerPanic = fmt.Errorf("worker panic")
)
