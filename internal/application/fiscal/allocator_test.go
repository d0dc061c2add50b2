package fiscal_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/application/apptest"
	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/fiscal"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/pkg/dgii"
)

var ctx = context.Background()

// ── Emisión ───────────────────────────────────────────────────────────────────

func TestAllocate_ConsecutivosHastaAgotar(t *testing.T) {
	env := apptest.New(t)
	env.Sequence(t, dgii.TypeConsumo, 3)

	first, err := env.Allocator.Allocate(ctx, apptest.Actor, dgii.TypeConsumo)
	require.NoError(t, err)
	assert.Equal(t, "B0200000001", first)
	second, err := env.Allocator.Allocate(ctx, apptest.Actor, dgii.TypeConsumo)
	require.NoError(t, err)
	assert.Equal(t, "B0200000002", second)

	_, err = env.Allocator.Allocate(ctx, apptest.Actor, dgii.TypeConsumo)
	assert.ErrorIs(t, err, domain.ErrSequenceExhausted)
	assert.ErrorIs(t, err, domain.ErrResourceExhausted)
}

func TestAllocate_SecuenciaVencida(t *testing.T) {
	env := apptest.New(t)
	env.Sequence(t, dgii.TypeConsumo, 100)
	env.Clock.Advance(366 * 24 * time.Hour)

	_, err := env.Allocator.Allocate(ctx, apptest.Actor, dgii.TypeConsumo)
	assert.ErrorIs(t, err, domain.ErrSequenceExpired)
}

func TestAllocate_SinSecuencia(t *testing.T) {
	env := apptest.New(t)
	_, err := env.Allocator.Allocate(ctx, apptest.Actor, dgii.TypeNotaCredito)
	assert.ErrorIs(t, err, domain.ErrNoActiveSequence)
}

func TestAllocate_ConcurrenteSinDuplicados(t *testing.T) {
	env := apptest.New(t)
	env.Sequence(t, dgii.TypeCreditoFiscal, 1000)

	const n = 50
	seen := make(map[string]bool, n)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := env.Allocator.Allocate(ctx, apptest.Actor, dgii.TypeCreditoFiscal)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[num], "NCF repetido %s", num)
			seen[num] = true
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)

	list, err := env.Sequences.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(n+1), list[0].Counter)
}

// ── Secuencias ────────────────────────────────────────────────────────────────

func TestSequence_UnaActivaPorTipo(t *testing.T) {
	env := apptest.New(t)
	seq := env.Sequence(t, dgii.TypeConsumo, 100)
	assert.Equal(t, "B02", seq.Prefix)
	assert.Equal(t, int64(99), seq.Remaining)

	_, err := env.Sequences.Create(ctx, apptest.Actor, dto.CreateSequenceRequest{
		DocumentType: dgii.TypeConsumo, Series: dgii.SeriesElectronic, RangeStart: 1, RangeEnd: 10, Expiry: apptest.Start.AddDate(1, 0, 0),
	})
	assert.ErrorIs(t, err, domain.ErrSequenceExists)

	deactivated, err := env.Sequences.Deactivate(ctx, apptest.Actor, seq.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	_, err = env.Sequences.Deactivate(ctx, apptest.Actor, seq.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = env.Allocator.Allocate(ctx, apptest.Actor, dgii.TypeConsumo)
	assert.ErrorIs(t, err, domain.ErrNoActiveSequence)

	electronic, err := env.Sequences.Create(ctx, apptest.Actor, dto.CreateSequenceRequest{
		DocumentType: dgii.TypeConsumo, Series: dgii.SeriesElectronic, RangeStart: 1, RangeEnd: 10, Expiry: apptest.Start.AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "E02", electronic.Prefix)
}

func TestSequence_Validaciones(t *testing.T) {
	env := apptest.New(t)
	expiry := apptest.Start.AddDate(1, 0, 0)

	cases := []struct {
		name string
		req  dto.CreateSequenceRequest
		err  error
	}{
		{"tipo inválido", dto.CreateSequenceRequest{DocumentType: "31", RangeStart: 1, RangeEnd: 10, Expiry: expiry}, domain.ErrInvalidFiscalNumber},
		{"serie P", dto.CreateSequenceRequest{DocumentType: "01", Series: "P", RangeStart: 1, RangeEnd: 10, Expiry: expiry}, domain.ErrInvalidFiscalNumber},
		{"rango invertido", dto.CreateSequenceRequest{DocumentType: "01", RangeStart: 10, RangeEnd: 5, Expiry: expiry}, domain.ErrInvalidInput},
		{"rango mayor a 8 dígitos", dto.CreateSequenceRequest{DocumentType: "01", RangeStart: 1, RangeEnd: 200000000, Expiry: expiry}, domain.ErrInvalidInput},
		{"vencida", dto.CreateSequenceRequest{DocumentType: "01", RangeStart: 1, RangeEnd: 10, Expiry: apptest.Start.Add(-time.Hour)}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Sequences.Create(ctx, apptest.Actor, tc.req)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestSequence_AuditaCreacion(t *testing.T) {
	env := apptest.New(t)
	seq := env.Sequence(t, dgii.TypeConsumo, 10)

	entries, err := env.Store.Repos().Audit.ListByEntity(ctx, entity.AuditEntitySequence, seq.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditCreated, entries[0].Event)
	assert.Equal(t, apptest.Actor.UserID, entries[0].UserID)
	assert.Equal(t, apptest.Actor.IP, entries[0].IP)
}

// ── Validación de números ────────────────────────────────────────────────────

func TestValidateNumber(t *testing.T) {
	cases := []struct {
		name  string
		in    dto.ValidateFiscalNumberRequest
		valid bool
		code  string
	}{
		{"válido", dto.ValidateFiscalNumberRequest{Number: "b0100000010"}, true, ""},
		{"formato", dto.ValidateFiscalNumberRequest{Number: "B01-123"}, false, "INVALID_FISCAL_NUMBER"},
		{"tipo distinto", dto.ValidateFiscalNumberRequest{Number: "B0100000010", DocumentType: "02"}, false, "FISCAL_TYPE_MISMATCH"},
		{"no creciente", dto.ValidateFiscalNumberRequest{Number: "B0100000010", Last: "B0100000010"}, false, "FISCAL_NUMBER_NOT_INCREASING"},
		{"creciente", dto.ValidateFiscalNumberRequest{Number: "B0100000011", Last: "B0100000010"}, true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fiscal.ValidateNumber(tc.in)
			assert.Equal(t, tc.valid, got.Valid)
			assert.Equal(t, tc.code, got.Code)
		})
	}
}
