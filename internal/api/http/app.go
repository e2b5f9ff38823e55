package httpapi

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/carbon-intensity-proxy/internal/carbon"
	"github.com/i474232898/carbon-intensity-proxy/internal/observability"
)

// NewApp builds the Fiber app with middleware, metrics and API routes.
// Access log lines go to accessLog.
func NewApp(service *carbon.Service, metrics *observability.Metrics, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "carbon-intensity-proxy",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Outbound calls may take the full upstream timeout.
		WriteTimeout: 15 * time.Second,
		ErrorHandler: ErrorHandler,
	})

	// Global middleware
	// The access logger renders handler errors itself, so instrument sits outside it
	// and only reads the final status.
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(instrument(metrics))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} | ${path} | ${error}\n",
		Output: accessLog,
	}))
	app.Use(recover.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	RegisterRoutes(app, service)

	return app
}

// ErrorHandler renders every error as {"detail": ...} with a status chosen by type.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var (
		missing     *carbon.MissingParameterError
		upstreamErr *carbon.UpstreamError
		fiberErr    *fiber.Error
	)
	switch {
	case errors.As(err, &missing):
		code = fiber.StatusBadRequest
	case errors.As(err, &upstreamErr):
		code = fiber.StatusBadGateway
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": err.Error(),
	})
}

// instrument counts requests by matched route and final status.
func instrument(metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if metrics == nil {
			return c.Next()
		}

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		metrics.HTTPRequests.
			WithLabelValues(c.Route().Path, strconv.Itoa(c.Response().StatusCode())).
			Inc()
		return nil
	}
}
