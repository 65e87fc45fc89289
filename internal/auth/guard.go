package auth

import (
	apperrors "messagely/internal/errors"
	"messagely/internal/model"
)

// Authorization checks. All of them are pure decisions: no datastore
// access and no side effects beyond the returned error.

// EnsureCorrectUser allows access only when the authenticated identity
// is the target user itself.
func EnsureCorrectUser(identity, username string) error {
	if identity == "" {
		return apperrors.ErrUnauthorized
	}
	if identity != username {
		return apperrors.ErrForbidden
	}
	return nil
}

// EnsureParticipant allows access only to the message's sender or recipient.
func EnsureParticipant(identity string, message *model.Message) error {
	if identity == "" {
		return apperrors.ErrUnauthorized
	}
	if identity != message.FromUsername && identity != message.ToUsername {
		return apperrors.ErrForbidden
	}
	return nil
}

// EnsureRecipient allows access only to the message's recipient.
func EnsureRecipient(identity string, message *model.Message) error {
	if identity == "" {
		return apperrors.ErrUnauthorized
	}
	if identity != message.ToUsername {
		return apperrors.ErrForbidden
	}
	return nil
}
