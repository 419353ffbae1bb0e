package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClasses(t *testing.T) {
	cases := []struct {
		err   error
		class error
	}{
		{ErrProfileNotFound, ErrNotFound},
		{ErrTeamNotFound, ErrNotFound},
		{ErrJoinRequestNotFound, ErrNotFound},
		{ErrProfileExists, ErrConflict},
		{ErrAlreadyMember, ErrConflict},
		{ErrDuplicatePending, ErrConflict},
		{ErrRequestNotPending, ErrInvalidStateTransition},
		{ErrNotTeamCreator, ErrPermissionDenied},
		{ErrNotTeamMember, ErrPermissionDenied},
		{ErrMessageBlocked, ErrValidation},
		{validationError("role is required"), ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.class)
		})
	}
}

func TestStoreError(t *testing.T) {
	assert.NoError(t, storeError(nil, ErrTeamNotFound))
	assert.ErrorIs(t, storeError(pgx.ErrNoRows, ErrTeamNotFound), ErrTeamNotFound)
	assert.ErrorIs(t, storeError(fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrProfileNotFound), ErrProfileNotFound)

	timeout := storeError(context.DeadlineExceeded, nil)
	assert.ErrorIs(t, timeout, ErrUnavailable)
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)

	other := errors.New("boom")
	assert.Equal(t, other, storeError(other, ErrTeamNotFound))
}

func TestPgErrorCode(t *testing.T) {
	assert.Equal(t, pgUniqueViolation, pgErrorCode(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.Equal(t, "", pgErrorCode(errors.New("boom")))
}
