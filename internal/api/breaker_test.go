package api

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFalla = errors.New("falla")

func TestBreakerAbreTrasUmbralDeFallos(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		assert.Equal(t, BreakerClosed, b.State())
		err := b.Execute(func() error { return errFalla })
		assert.ErrorIs(t, err, errFalla)
	}

	assert.Equal(t, BreakerOpen, b.State())
	err := b.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrBackendNoDisponible)
}

func TestBreakerExitoReiniciaElConteo(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})

	require.Error(t, b.Execute(func() error { return errFalla }))
	require.NoError(t, b.Execute(func() error { return nil }))
	require.Error(t, b.Execute(func() error { return errFalla }))

	assert.Equal(t, BreakerClosed, b.State(), "un éxito intermedio reinicia la cuenta de fallos")
}

func TestBreakerSemiabiertoYCierre(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, b.Execute(func() error { return errFalla }))
	assert.Equal(t, BreakerOpen, b.State())

	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, BreakerHalfOpen, b.State())

	// Dos sondas exitosas cierran el circuito
	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, BreakerHalfOpen, b.State())
	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreakerSemiabiertoReabreAlFallar(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 5, SuccessThreshold: 1, OpenTimeout: 10 * time.Millisecond})

	// Forzar apertura
	for i := 0; i < 5; i++ {
		require.Error(t, b.Execute(func() error { return errFalla }))
	}
	time.Sleep(15 * time.Millisecond)
	require.Equal(t, BreakerHalfOpen, b.State())

	require.Error(t, b.Execute(func() error { return errFalla }))
	assert.Equal(t, BreakerOpen, b.State(), "una sonda fallida reabre de inmediato")
}

func TestBreakerEstadosComoTexto(t *testing.T) {
	assert.Equal(t, "closed", BreakerClosed.String())
	assert.Equal(t, "open", BreakerOpen.String())
	assert.Equal(t, "half-open", BreakerHalfOpen.String())
}
