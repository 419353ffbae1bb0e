package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error classes. Every error returned by a service matches exactly one of these with errors.Is.
var (
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrUnavailable            = errors.New("temporarily unavailable")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrConflict               = errors.New("conflict")
)

var (
	ErrProfileNotFound     = fmt.Errorf("profile %w", ErrNotFound)
	ErrTeamNotFound        = fmt.Errorf("team %w", ErrNotFound)
	ErrJoinRequestNotFound = fmt.Errorf("join request %w", ErrNotFound)

	ErrProfileExists    = fmt.Errorf("%w: profile already exists", ErrConflict)
	ErrAlreadyMember    = fmt.Errorf("%w: already a member of this team", ErrConflict)
	ErrDuplicatePending = fmt.Errorf("%w: a pending request for this team already exists", ErrConflict)

	ErrRequestNotPending = fmt.Errorf("%w: join request is no longer pending", ErrInvalidStateTransition)

	ErrNotTeamCreator = fmt.Errorf("%w: only the team creator can do this", ErrPermissionDenied)
	ErrNotTeamMember  = fmt.Errorf("%w: not a member of this team", ErrPermissionDenied)

	ErrMessageBlocked = fmt.Errorf("%w: message was blocked by moderation", ErrValidation)
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeError classifies a datastore error. pgx.ErrNoRows becomes notFound when one is given;
// timeouts and connection failures become ErrUnavailable.
func storeError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
