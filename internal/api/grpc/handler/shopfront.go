package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/shopfront/internal/api/grpc/proto"
	"github.com/dtroode/shopfront/internal/catalog"
	"github.com/dtroode/shopfront/internal/logger"
	"github.com/dtroode/shopfront/internal/model"
	"github.com/dtroode/shopfront/internal/service"
)

// SessionService manages registered users and the logged-in user.
type SessionService interface {
	Signup(ctx context.Context, fullName, email, password string) error
	Login(ctx context.Context, email, password string) (model.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, fullName, email string) (model.User, error)
	CurrentUser() (model.User, bool)
}

// CatalogService holds the products page state.
type CatalogService interface {
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
	SetSearch(search string)
	UpdateFilters(u model.FilterUpdate)
	SetSort(key model.SortKey)
	Scroll(distanceToBottom float64) bool
	Select(id int) (model.Product, error)
	ClearSelection()
	View() service.View
	Facets() catalog.Facets
}

var _ proto.ShopfrontServer = (*Shopfront)(nil)

// Shopfront handles gRPC endpoints of the shopfront service.
type Shopfront struct {
	session        SessionService
	catalog        CatalogService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewShopfront creates a new Shopfront handler.
func NewShopfront(session SessionService, catalog CatalogService, contextManager model.ContextManager, logger *logger.Logger) *Shopfront {
	return &Shopfront{
		session:        session,
		catalog:        catalog,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Signup registers a user from fullName, email and password.
func (h *Shopfront) Signup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fullName, err := requiredString(req, "fullName")
	if err != nil {
		return nil, handleError(err)
	}
	email, err := requiredString(req, "email")
	if err != nil {
		return nil, handleError(err)
	}
	password, err := requiredString(req, "password")
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Debug("Shopfront handler: processing signup request",
		"email", email)

	if err := h.session.Signup(ctx, fullName, email, password); err != nil {
		h.logger.Info("Shopfront handler: signup rejected",
			"email", email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toStruct(map[string]any{"redirectTo": string(model.RouteSignIn)})
}

// Login starts a session and returns the user.
func (h *Shopfront) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email, err := requiredString(req, "email")
	if err != nil {
		return nil, handleError(err)
	}
	password, err := requiredString(req, "password")
	if err != nil {
		return nil, handleError(err)
	}

	user, err := h.session.Login(ctx, email, password)
	if err != nil {
		h.logger.Info("Shopfront handler: login rejected",
			"email", email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toStruct(map[string]any{
		"user":       userValue(user),
		"redirectTo": string(model.RouteProducts),
	})
}

// Logout ends the session.
func (h *Shopfront) Logout(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := h.session.Logout(ctx); err != nil {
		h.logger.Error("Shopfront handler: logout failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	return toStruct(map[string]any{"redirectTo": string(model.RouteSignIn)})
}

// CurrentUser returns the logged-in user, if any.
func (h *Shopfront) CurrentUser(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	user, ok := h.session.CurrentUser()
	if !ok {
		return toStruct(map[string]any{"loggedIn": false})
	}

	return toStruct(map[string]any{
		"loggedIn": true,
		"user":     userValue(user),
	})
}

// UpdateProfile changes the logged-in user's name and email.
func (h *Shopfront) UpdateProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fullName, err := requiredString(req, "fullName")
	if err != nil {
		return nil, handleError(err)
	}
	email, err := requiredString(req, "email")
	if err != nil {
		return nil, handleError(err)
	}

	userID, _ := h.contextManager.GetUserIDFromContext(ctx)

	user, err := h.session.UpdateProfile(ctx, fullName, email)
	if err != nil {
		h.logger.Error("Shopfront handler: profile update failed",
			"user_id", userID.String(),
			"error", err.Error())
		return nil, handleError(err)
	}

	return toStruct(map[string]any{"user": userValue(user)})
}

// GetView returns the products page, fetching the catalog on first use.
// A failed fetch still yields a view over the empty catalog.
func (h *Shopfront) GetView(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := h.catalog.Load(ctx); err != nil {
		h.logger.Warn("Shopfront handler: showing empty catalog",
			"error", err.Error())
	}

	return toStruct(viewValue(h.catalog.View()))
}

// SetQuery updates any of search, sort and the facet selections.
func (h *Shopfront) SetQuery(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	search, hasSearch, err := stringField(req, "search")
	if err != nil {
		return nil, handleError(err)
	}
	rawSort, hasSort, err := stringField(req, "sort")
	if err != nil {
		return nil, handleError(err)
	}
	var sortKey model.SortKey
	if hasSort {
		if sortKey, err = model.ParseSortKey(rawSort); err != nil {
			return nil, handleError(err)
		}
	}
	update, err := filterUpdateFromStruct(req)
	if err != nil {
		return nil, handleError(err)
	}

	if hasSearch {
		h.catalog.SetSearch(search)
	}
	if hasSort {
		h.catalog.SetSort(sortKey)
	}
	h.catalog.UpdateFilters(update)

	return toStruct(viewValue(h.catalog.View()))
}

// Scroll takes either distanceToBottom or the viewport triple
// viewportHeight, scrollY and contentHeight.
func (h *Shopfront) Scroll(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	distance, ok, err := numberField(req, "distanceToBottom")
	if err != nil {
		return nil, handleError(err)
	}
	if !ok {
		distance, err = viewportDistance(req)
		if err != nil {
			return nil, handleError(err)
		}
	}

	advanced := h.catalog.Scroll(distance)

	return toStruct(map[string]any{
		"advanced": advanced,
		"view":     viewValue(h.catalog.View()),
	})
}

func viewportDistance(req *structpb.Struct) (float64, error) {
	var values [3]float64
	for i, name := range []string{"viewportHeight", "scrollY", "contentHeight"} {
		v, ok, err := numberField(req, name)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, invalidArgument("distanceToBottom or %s is required", name)
		}
		values[i] = v
	}
	return catalog.DistanceToBottom(values[0], values[1], values[2]), nil
}

// SelectProduct opens the detail view of a product by id.
func (h *Shopfront) SelectProduct(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, ok, err := intField(req, "id")
	if err != nil {
		return nil, handleError(err)
	}
	if !ok {
		return nil, handleError(invalidArgument("id is required"))
	}

	if _, err := h.catalog.Select(id); err != nil {
		return nil, handleError(err)
	}

	return toStruct(viewValue(h.catalog.View()))
}

// ClearSelection returns to the grid view.
func (h *Shopfront) ClearSelection(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	h.catalog.ClearSelection()
	return toStruct(viewValue(h.catalog.View()))
}

// Reload fetches the catalog again.
func (h *Shopfront) Reload(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := h.catalog.Reload(ctx); err != nil {
		h.logger.Error("Shopfront handler: catalog reload failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	return toStruct(viewValue(h.catalog.View()))
}

// Facets lists the filter options for the loaded catalog.
func (h *Shopfront) Facets(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(facetsValue(h.catalog.Facets()))
}
