package clock

import (
	"sync"
	"time"
)

// Fake reloj controlable para pruebas; seguro para uso concurrente.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake crea un reloj detenido en t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t.UTC()}
}

// Now hora fijada.
func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance adelanta el reloj.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set fija el reloj en t.
func (c *Fake) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}
