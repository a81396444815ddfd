package service

import "github.com/dtroode/shopfront/internal/model"

// Guard decides which routes the current session may visit.
type Guard struct {
	session interface{ IsLoggedIn() bool }
}

func NewGuard(session interface{ IsLoggedIn() bool }) *Guard {
	return &Guard{session: session}
}

// Check applies the access rules: signin and signup are for visitors only,
// products and profile require a session, and unknown routes lead to signin.
func (g *Guard) Check(route model.Route) model.Decision {
	loggedIn := g.session.IsLoggedIn()

	switch route {
	case model.RouteSignIn, model.RouteSignUp:
		if loggedIn {
			return model.Decision{RedirectTo: model.RouteProducts}
		}
		return model.Decision{Allowed: true}
	case model.RouteProducts, model.RouteProfile:
		if !loggedIn {
			return model.Decision{RedirectTo: model.RouteSignIn}
		}
		return model.Decision{Allowed: true}
	default:
		return model.Decision{RedirectTo: model.RouteSignIn}
	}
}
