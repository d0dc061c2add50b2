package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// httpObserver lo implementa *metrics.Recorder; la interfaz evita acoplar el router a Prometheus.
type httpObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// MetricsMiddleware mide cada petición por ruta registrada (no por path concreto).
func MetricsMiddleware(obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		obs.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
