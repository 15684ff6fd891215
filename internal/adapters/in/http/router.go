package http

import (
	"context"
	"net/http"

	"orderdesk/internal/core/domain/model/actor"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const csrfHeader = "X-CSRF-Token"

// RouterConfig configures NewRouter.
type RouterConfig struct {
	Handlers      Handlers
	Limiters      Limiters
	Logger        logrus.FieldLogger
	CSRFEnabled   bool
	SecureCookies bool
}

// NewRouter builds the echo instance with every route and middleware wired.
// It fails only if the embedded API document is invalid.
func NewRouter(ctx context.Context, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	registerSwagger(docJSON)

	logger := cfg.Logger.WithField("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = newErrorHandler(logger)
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(middleware.BodyLimit("64K"))
	if cfg.CSRFEnabled {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "header:" + csrfHeader,
			CookieName:     "csrftoken",
			CookiePath:     "/",
			CookieSecure:   cfg.SecureCookies,
			CookieSameSite: http.SameSiteStrictMode,
			ErrorHandler: func(err error, _ echo.Context) error {
				return echo.NewHTTPError(http.StatusForbidden, "invalid csrf token").SetInternal(err)
			},
		}))
	}

	session := func(roles ...actor.Role) echo.MiddlewareFunc {
		return requireSession(cfg.Handlers.Authenticate, roles...)
	}
	createLimit := rateLimit(cfg.Limiters.Create)
	updateLimit := rateLimit(cfg.Limiters.Update)
	readLimit := rateLimit(cfg.Limiters.Read)

	server := NewServer(cfg.Handlers, cfg.SecureCookies)
	RegisterHandlers(e, server, RouteMiddlewares{
		"createOrder":       {createLimit},
		"trackOrder":        {readLimit},
		"updateOrderStatus": {updateLimit, session(actor.Chef, actor.Courier)},
		"chefLogin":         {updateLimit},
		"courierLogin":      {updateLimit},
		"logout":            {session(actor.Chef, actor.Courier)},
		"getKitchenQueue":   {readLimit, session(actor.Chef)},
		"getCourierFeed":    {readLimit},
	})

	e.GET("/api/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
