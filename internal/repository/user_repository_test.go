package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	dupName := &pgconn.PgError{Code: uniqueViolation, ConstraintName: usernameUniqueConstraint}
	dupEmail := &pgconn.PgError{Code: uniqueViolation, ConstraintName: emailUniqueConstraint}
	otherUnique := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_pkey"}
	other := errors.New("conn closed")

	assert.ErrorIs(t, mapWriteError(dupName), ErrDuplicateUsername)
	assert.ErrorIs(t, mapWriteError(fmt.Errorf("insert: %w", dupEmail)), ErrDuplicateEmail)
	assert.Same(t, otherUnique, mapWriteError(otherUnique))
	assert.Equal(t, other, mapWriteError(other))
	assert.NoError(t, mapWriteError(nil))
}
