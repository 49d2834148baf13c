package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("wrapped domain error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("login: %w", NewAccountLocked())
		de := ToDomainError(err)
		require.NotNil(t, de)
		assert.Equal(t, CodeAccountLocked, de.Code)
		assert.Equal(t, http.StatusTooManyRequests, de.HTTPStatus)
	})

	t.Run("plain error becomes internal without leaking", func(t *testing.T) {
		de := ToDomainError(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
		require.NotNil(t, de)
		assert.Equal(t, CodeInternal, de.Code)
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
		assert.Equal(t, "internal server error", de.Message)
	})
}

func TestRateLimitAndLockoutShareStatusButNotCode(t *testing.T) {
	rl := ToDomainError(NewRateLimited())
	lock := ToDomainError(NewAccountLocked())

	assert.Equal(t, rl.HTTPStatus, lock.HTTPStatus)
	assert.NotEqual(t, rl.Code, lock.Code)
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewInvalidCredentials(), CodeInvalidCredentials))
	assert.False(t, IsCode(NewInvalidCredentials(), CodeInvalidToken))
	assert.False(t, IsCode(errors.New("boom"), CodeInternal))
}
