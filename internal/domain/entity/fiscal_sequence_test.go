package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

func TestFiscalSequence_Next(t *testing.T) {
	now := time.Now()
	seq := &entity.FiscalSequence{Prefix: "B02", Counter: 1, RangeStart: 1, RangeEnd: 3, Expiry: now.Add(time.Hour), Active: true}

	n, err := seq.Next(now)
	require.NoError(t, err)
	assert.Equal(t, "B0200000001", n)
	assert.Len(t, n, 11)

	n, err = seq.Next(now)
	require.NoError(t, err)
	assert.Equal(t, "B0200000002", n)

	_, err = seq.Next(now)
	assert.ErrorIs(t, err, domain.ErrSequenceExhausted)
	assert.ErrorIs(t, err, domain.ErrResourceExhausted)
	assert.Equal(t, int64(3), seq.Counter, "un fallo no consume número")
}

func TestFiscalSequence_CheckUsable_Orden(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	inactive := &entity.FiscalSequence{Counter: 5, RangeEnd: 5, Expiry: past, Active: false}
	assert.ErrorIs(t, inactive.CheckUsable(now), domain.ErrNoActiveSequence)

	exhausted := &entity.FiscalSequence{Counter: 5, RangeEnd: 5, Expiry: past, Active: true}
	assert.ErrorIs(t, exhausted.CheckUsable(now), domain.ErrSequenceExhausted)

	expired := &entity.FiscalSequence{Counter: 1, RangeEnd: 5, Expiry: past, Active: true}
	assert.ErrorIs(t, expired.CheckUsable(now), domain.ErrSequenceExpired)
	assert.Equal(t, int64(4), expired.Remaining())
}
