// Package http is the JSON API of the order desk: customer intake and
// tracking, chef and courier panels and the status transition endpoint.
package http

import (
	"context"
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/actor"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}
	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error
	}
	LoginHandler interface {
		Handle(ctx context.Context, cmd commands.LoginCommand) (commands.LoginResult, error)
	}
	LogoutHandler interface {
		Handle(ctx context.Context, cmd commands.LogoutCommand) error
	}
	KitchenQueueHandler interface {
		Handle(ctx context.Context, query queries.GetKitchenQueueQuery) ([]queries.KitchenOrderResponse, error)
	}
	CourierFeedHandler interface {
		Handle(ctx context.Context, query queries.GetCourierFeedQuery) ([]queries.CourierOrderResponse, error)
	}
	TrackOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderBySecretCodeQuery) (queries.TrackedOrderResponse, error)
	}
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreateOrder       CreateOrderHandler
	UpdateOrderStatus UpdateOrderStatusHandler
	Login             LoginHandler
	Logout            LogoutHandler
	Authenticate      SessionAuthenticator
	KitchenQueue      KitchenQueueHandler
	CourierFeed       CourierFeedHandler
	TrackOrder        TrackOrderHandler
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	cookies  cookieSettings
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, secureCookies bool) *Server {
	return &Server{handlers: handlers, cookies: cookieSettings{secure: secureCookies}}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetCsrfToken handles GET /api/csrf. The CSRF middleware has already set the
// cookie; the token is repeated in the body for script clients.
func (s *Server) GetCsrfToken(ctx echo.Context) error {
	token, _ := ctx.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return ctx.JSON(http.StatusOK, CsrfTokenResponse{CsrfToken: token})
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
	}
	req.trim()
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(req.toParams())
	if err != nil {
		return err
	}

	result, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, CreatedOrderResponse{
		Success:    true,
		PublicCode: result.PublicCode.String(),
		SecretCode: result.SecretCode.String(),
		TotalPrice: result.TotalPrice,
	})
}

// TrackOrder handles GET /api/orders/track/{secretCode}.
func (s *Server) TrackOrder(ctx echo.Context, secretCode string) error {
	result, err := s.handlers.TrackOrder.Handle(ctx.Request().Context(), queries.NewGetOrderBySecretCodeQuery(secretCode))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

// UpdateOrderStatus handles POST /api/orders/status. The acting identity comes
// from the session, never from the body. A courier moving an order to
// delivering without naming a courier takes it itself.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return commands.ErrUnauthorized
	}

	var req StatusChangeRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
	}

	courierCode := req.AcceptedBy
	if courierCode == "" && principal.Role == actor.Courier {
		courierCode = principal.Code.Reveal()
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(req.PublicCode, req.Status, principal.Role, principal.Code, courierCode)
	if err != nil {
		return err
	}

	if err = s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ChefLogin handles POST /api/chef/login.
func (s *Server) ChefLogin(ctx echo.Context) error {
	return s.login(ctx, actor.Chef)
}

// CourierLogin handles POST /api/courier/login.
func (s *Server) CourierLogin(ctx echo.Context) error {
	return s.login(ctx, actor.Courier)
}

func (s *Server) login(ctx echo.Context, role actor.Role) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
	}

	cmd, err := commands.NewLoginCommand(role, req.Code)
	if err != nil {
		return err
	}

	result, err := s.handlers.Login.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.cookies.set(ctx, result.SessionID.String(), result.ExpiresAt)
	return ctx.JSON(http.StatusOK, LoggedInResponse{
		Success:   true,
		Name:      result.ActorName,
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout handles POST /api/logout.
func (s *Server) Logout(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return commands.ErrUnauthorized
	}

	cmd, err := commands.NewLogoutCommand(principal.SessionID)
	if err != nil {
		return err
	}
	if err = s.handlers.Logout.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	clearSessionCookie(ctx)
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// GetKitchenQueue handles GET /api/chef/orders.
func (s *Server) GetKitchenQueue(ctx echo.Context) error {
	orders, err := s.handlers.KitchenQueue.Handle(ctx.Request().Context(), queries.NewGetKitchenQueueQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]any{"orders": orders})
}

// GetCourierFeed handles GET /api/courier/orders?code=. A missing code is
// rejected as unauthorized.
func (s *Server) GetCourierFeed(ctx echo.Context, params GetCourierFeedParams) error {
	var code string
	if params.Code != nil {
		code = *params.Code
	}

	query, err := queries.NewGetCourierFeedQuery(code)
	if err != nil {
		return err
	}

	orders, err := s.handlers.CourierFeed.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]any{"orders": orders})
}
