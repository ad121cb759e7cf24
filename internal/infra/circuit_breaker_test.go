package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGateway = errors.New("gateway unreachable")

func TestCircuitBreaker_AbreAposFalhasConsecutivas(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		assert.Equal(t, CBClosed, cb.State())
		err := cb.Execute(func() error { return errGateway })
		assert.ErrorIs(t, err, errGateway)
	}

	assert.Equal(t, CBOpen, cb.State())

	// Fast-fail without calling fn
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SucessoZeraContagem(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	require.Error(t, cb.Execute(func() error { return errGateway }))
	require.Error(t, cb.Execute(func() error { return errGateway }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	// Two more failures after the reset must not trip the breaker yet
	require.Error(t, cb.Execute(func() error { return errGateway }))
	require.Error(t, cb.Execute(func() error { return errGateway }))

	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFechaAposSucessos(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errGateway }))
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_ProbeFalhaReabre(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errGateway }))
	time.Sleep(15 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(func() error { return errGateway }))
	assert.Equal(t, CBOpen, cb.State())
}
