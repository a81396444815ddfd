package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/dtroode/shopfront/internal/api/grpc/handler"
	"github.com/dtroode/shopfront/internal/api/grpc/middleware"
	"github.com/dtroode/shopfront/internal/api/grpc/proto"
	"github.com/dtroode/shopfront/internal/logger"
	"github.com/dtroode/shopfront/internal/model"
)

// Session is the session surface the router needs: handler operations
// plus the login state the guard reads.
type Session interface {
	handler.SessionService
	middleware.CurrentUser
}

// Router builds the gRPC server for the shopfront service.
type Router struct {
	session        Session
	catalog        handler.CatalogService
	guard          middleware.RouteGuard
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	session Session,
	catalog handler.CatalogService,
	guard middleware.RouteGuard,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		session:        session,
		catalog:        catalog,
		guard:          guard,
		contextManager: contextManager,
		logger:         logger,
	}
}

// methodRoutes lists the route each guarded method belongs to.
var methodRoutes = map[string]model.Route{
	proto.Shopfront_Signup_FullMethodName:         model.RouteSignUp,
	proto.Shopfront_Login_FullMethodName:          model.RouteSignIn,
	proto.Shopfront_UpdateProfile_FullMethodName:  model.RouteProfile,
	proto.Shopfront_GetView_FullMethodName:        model.RouteProducts,
	proto.Shopfront_SetQuery_FullMethodName:       model.RouteProducts,
	proto.Shopfront_Scroll_FullMethodName:         model.RouteProducts,
	proto.Shopfront_SelectProduct_FullMethodName:  model.RouteProducts,
	proto.Shopfront_ClearSelection_FullMethodName: model.RouteProducts,
	proto.Shopfront_Reload_FullMethodName:         model.RouteProducts,
	proto.Shopfront_Facets_FullMethodName:         model.RouteProducts,
}

func guarded(_ context.Context, c interceptors.CallMeta) bool {
	_, ok := methodRoutes[c.FullMethod()]
	return ok
}

// Register creates the gRPC server with logging, panic recovery and route
// guard interceptors, and registers the shopfront service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	guard := middleware.NewGuard(r.guard, r.session, methodRoutes, r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(logging.Recovered)),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(guard.AuthFunc),
				selector.MatchFunc(guarded),
			),
		),
	)

	s := grpc.NewServer(opts...)
	proto.RegisterShopfrontServer(s, handler.NewShopfront(r.session, r.catalog, r.contextManager, r.logger))

	return s
}
