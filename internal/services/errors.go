package services

import (
	"errors"

	"photoshare-api/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrForbidden         = errors.New("forbidden")
)

// validateID maps malformed ids to ErrNotFound before they reach the store:
// nothing persisted can be named by them, and the uuid columns would reject
// them with a query error otherwise.
func validateID(ids ...string) error {
	for _, id := range ids {
		if uuid.Validate(id) != nil {
			return repository.ErrNotFound
		}
	}
	return nil
}

// authorizeOwner is the single ownership policy. Every mutating photo and
// comment operation goes through it.
func authorizeOwner(ownerID, callerID int) error {
	if ownerID != callerID {
		return ErrForbidden
	}
	return nil
}
