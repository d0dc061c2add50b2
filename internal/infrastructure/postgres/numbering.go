package postgres

import (
	"context"
	"fmt"
	"time"
)

// nextDailyNumber incrementa el contador (scope, día UTC) y devuelve el nuevo valor.
// El upsert deja la fila bloqueada hasta el commit, así dos transacciones del mismo
// ámbito no pueden obtener el mismo número.
func nextDailyNumber(ctx context.Context, q Querier, scope string, day time.Time) (int, error) {
	d := day.UTC()
	var n int
	err := q.QueryRow(ctx, `
		INSERT INTO daily_counters (scope, day, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (scope, day) DO UPDATE SET last_value = daily_counters.last_value + 1
		RETURNING last_value`,
		scope, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next number %s: %w", scope, err)
	}
	return n, nil
}
