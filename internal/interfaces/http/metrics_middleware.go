package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// httpObserver lo implementa *metrics.Metrics.
type httpObserver interface {
	ObserveHTTP(method, path, status string, elapsed time.Duration)
}

// MetricsMiddleware registra cantidad y duración de peticiones por ruta y status.
// Se usa la ruta registrada (/api/purchases/:id), no la URL, para acotar la cardinalidad.
func MetricsMiddleware(obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		// c.Method() apunta al buffer de la petición, que fiber reutiliza; la etiqueta debe ser una copia.
		obs.ObserveHTTP(utils.CopyString(c.Method()), utils.CopyString(path), strconv.Itoa(status), time.Since(start))
		return err
	}
}
