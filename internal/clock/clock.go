// Package clock abstrae la hora actual para poder fijarla en pruebas.
package clock

import "time"

// Clock fuente de la hora actual.
type Clock interface {
	Now() time.Time
}

// System reloj real (UTC).
type System struct{}

// Now hora actual en UTC.
func (System) Now() time.Time { return time.Now().UTC() }
