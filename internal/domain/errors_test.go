package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/comercial-api/internal/domain"
)

func TestError_ClaseYCodigo(t *testing.T) {
	wrapped := fmt.Errorf("aplicar pago: %w", domain.ErrExcessPayment)

	assert.True(t, errors.Is(wrapped, domain.ErrExcessPayment))
	assert.True(t, errors.Is(wrapped, domain.ErrConflict))
	assert.False(t, errors.Is(wrapped, domain.ErrNotFound))
	assert.Equal(t, "EXCESS_PAYMENT", domain.Code(wrapped))
}

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrNoActiveSequence, "NO_ACTIVE_SEQUENCE"},
		{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
		{domain.Validation("cantidad %d", 0), "VALIDATION"},
		{domain.NotFound("producto"), "NOT_FOUND"},
		{domain.ErrForbidden, "FORBIDDEN"},
		{errors.New("otro"), ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.Code(tc.err))
	}
	assert.ErrorIs(t, domain.ErrNoActiveSequence, domain.ErrNotFound)
	assert.ErrorIs(t, domain.ErrSequenceExpired, domain.ErrResourceExhausted)
}
