package middleware

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopfront/internal/logger"
	"github.com/dtroode/shopfront/internal/model"
)

// RouteGuard decides whether the current session may enter a route.
type RouteGuard interface {
	Check(route model.Route) model.Decision
}

// CurrentUser reports the logged-in user.
type CurrentUser interface {
	CurrentUser() (model.User, bool)
}

// Guard maps gRPC methods to routes and rejects calls the route guard does
// not allow.
type Guard struct {
	guard          RouteGuard
	session        CurrentUser
	routes         map[string]model.Route
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewGuard creates a Guard. Methods missing from routes are not checked.
func NewGuard(
	guard RouteGuard,
	session CurrentUser,
	routes map[string]model.Route,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Guard {
	return &Guard{
		guard:          guard,
		session:        session,
		routes:         routes,
		contextManager: contextManager,
		logger:         logger,
	}
}

// AuthFunc checks the route of the called method and puts the logged-in
// user's id into the returned context.
func (m *Guard) AuthFunc(ctx context.Context) (context.Context, error) {
	method, _ := grpc.Method(ctx)

	if route, ok := m.routes[method]; ok {
		decision := m.guard.Check(route)
		if !decision.Allowed {
			m.logger.Info("Guard middleware: call rejected",
				"method", method,
				"route", string(route),
				"redirect_to", string(decision.RedirectTo))
			return nil, rejection(decision)
		}
	}

	if user, ok := m.session.CurrentUser(); ok {
		ctx = m.contextManager.SetUserIDToContext(ctx, user.ID)
	}

	return ctx, nil
}

func rejection(d model.Decision) error {
	if d.RedirectTo == model.RouteSignIn {
		return status.Error(codes.Unauthenticated,
			fmt.Sprintf("%s: redirect to %s", model.ErrNotLoggedIn, d.RedirectTo))
	}
	return status.Error(codes.FailedPrecondition,
		fmt.Sprintf("%s: redirect to %s", model.ErrAlreadyLoggedIn, d.RedirectTo))
}
