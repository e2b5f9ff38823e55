package httpapi

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/carbon-intensity-proxy/internal/carbon"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *carbon.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/health/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	regional := v1.Group("/carbon/regional")
	for _, kind := range carbon.WindowKinds {
		regional.Get("/"+string(kind)+"/", regionalIntensity(service, kind))
	}
}

func regionalIntensity(service *carbon.Service, kind carbon.WindowKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parsePostcodeQuery(c)
		if err != nil {
			return err
		}

		data, err := service.Fetch(c.UserContext(), q.Postcode, kind)
		if err != nil {
			return err
		}

		return c.JSON(carbon.Envelope(q.Postcode, data))
	}
}

// postcodeQuery holds the query parameters for the regional endpoints.
type postcodeQuery struct {
	Postcode string `validate:"required"`
}

func parsePostcodeQuery(c *fiber.Ctx) (postcodeQuery, error) {
	q := postcodeQuery{
		Postcode: cleanParam(c.Query("postcode")),
	}

	if err := validate.Struct(q); err != nil {
		return q, &carbon.MissingParameterError{Name: "postcode"}
	}

	return q, nil
}

// cleanParam decodes a query value once more, for clients that double-encode,
// and trims it. Values that do not decode are kept as received.
func cleanParam(raw string) string {
	if decoded, err := url.QueryUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.TrimSpace(raw)
}
