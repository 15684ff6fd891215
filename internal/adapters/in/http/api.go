package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Request and response bodies of the JSON API, mirroring openapi.yaml.

type NewOrderRequest struct {
	ClientName    string            `json:"client_name"    validate:"required,max=100"`
	ClientPhone   string            `json:"client_phone"   validate:"required"`
	DeliveryType  string            `json:"delivery_type"  validate:"required,oneof=pickup delivery"`
	Address       string            `json:"address"        validate:"required_if=DeliveryType delivery,max=500"`
	Cart          []CartLineRequest `json:"cart"           validate:"min=1,max=50,dive"`
	Comment       string            `json:"comment"        validate:"max=1000"`
	ScheduledTime string            `json:"scheduled_time" validate:"max=50"`
}

type CreatedOrderResponse struct {
	Success    bool   `json:"success"`
	PublicCode string `json:"public_code"`
	SecretCode string `json:"secret_code"`
	TotalPrice int    `json:"total_price"`
}

type StatusChangeRequest struct {
	PublicCode string `json:"public_code"`
	Status     string `json:"status"`
	AcceptedBy string `json:"accepted_by"`
}

type LoginRequest struct {
	Code string `json:"code"`
}

type LoggedInResponse struct {
	Success   bool      `json:"success"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type CsrfTokenResponse struct {
	CsrfToken string `json:"csrf_token"`
}

// GetCourierFeedParams defines parameters for GetCourierFeed.
type GetCourierFeedParams struct {
	Code *string `form:"code,omitempty" json:"code,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (GET /api/csrf)
	GetCsrfToken(ctx echo.Context) error
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/orders/track/{secretCode})
	TrackOrder(ctx echo.Context, secretCode string) error
	// (POST /api/orders/status)
	UpdateOrderStatus(ctx echo.Context) error
	// (POST /api/chef/login)
	ChefLogin(ctx echo.Context) error
	// (POST /api/courier/login)
	CourierLogin(ctx echo.Context) error
	// (POST /api/logout)
	Logout(ctx echo.Context) error
	// (GET /api/chef/orders)
	GetKitchenQueue(ctx echo.Context) error
	// (GET /api/courier/orders)
	GetCourierFeed(ctx echo.Context, params GetCourierFeedParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) GetCsrfToken(ctx echo.Context) error {
	return w.Handler.GetCsrfToken(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// TrackOrder converts echo context to params.
func (w *ServerInterfaceWrapper) TrackOrder(ctx echo.Context) error {
	var secretCode string

	err := runtime.BindStyledParameterWithOptions("simple", "secretCode", ctx.Param("secretCode"), &secretCode,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter secretCode")
	}

	return w.Handler.TrackOrder(ctx, secretCode)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	return w.Handler.UpdateOrderStatus(ctx)
}

func (w *ServerInterfaceWrapper) ChefLogin(ctx echo.Context) error {
	return w.Handler.ChefLogin(ctx)
}

func (w *ServerInterfaceWrapper) CourierLogin(ctx echo.Context) error {
	return w.Handler.CourierLogin(ctx)
}

func (w *ServerInterfaceWrapper) Logout(ctx echo.Context) error {
	return w.Handler.Logout(ctx)
}

func (w *ServerInterfaceWrapper) GetKitchenQueue(ctx echo.Context) error {
	return w.Handler.GetKitchenQueue(ctx)
}

// GetCourierFeed converts echo context to params. A missing code is left empty
// and rejected by the handler as unauthorized.
func (w *ServerInterfaceWrapper) GetCourierFeed(ctx echo.Context) error {
	var params GetCourierFeedParams

	err := runtime.BindQueryParameter("form", true, false, "code", ctx.QueryParams(), &params.Code)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter code")
	}

	return w.Handler.GetCourierFeed(ctx, params)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RouteMiddlewares attaches per-operation middleware, keyed by operation id.
type RouteMiddlewares map[string][]echo.MiddlewareFunc

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface, m RouteMiddlewares) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/health", wrapper.GetHealth, m["getHealth"]...)
	router.GET("/api/csrf", wrapper.GetCsrfToken, m["getCsrfToken"]...)
	router.POST("/api/orders", wrapper.CreateOrder, m["createOrder"]...)
	router.GET(trackPathPrefix+":secretCode", wrapper.TrackOrder, m["trackOrder"]...)
	router.POST("/api/orders/status", wrapper.UpdateOrderStatus, m["updateOrderStatus"]...)
	router.POST("/api/chef/login", wrapper.ChefLogin, m["chefLogin"]...)
	router.POST("/api/courier/login", wrapper.CourierLogin, m["courierLogin"]...)
	router.POST("/api/logout", wrapper.Logout, m["logout"]...)
	router.GET("/api/chef/orders", wrapper.GetKitchenQueue, m["getKitchenQueue"]...)
	router.GET("/api/courier/orders", wrapper.GetCourierFeed, m["getCourierFeed"]...)
}

const trackPathPrefix = "/api/orders/track/"
