package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/shopfront/internal/model"
)

type staticSession bool

func (s staticSession) IsLoggedIn() bool { return bool(s) }

func TestGuard_Check(t *testing.T) {
	tests := []struct {
		name     string
		loggedIn bool
		route    model.Route
		want     model.Decision
	}{
		{name: "visitor on signin", route: model.RouteSignIn, want: model.Decision{Allowed: true}},
		{name: "visitor on signup", route: model.RouteSignUp, want: model.Decision{Allowed: true}},
		{name: "visitor on products", route: model.RouteProducts, want: model.Decision{RedirectTo: model.RouteSignIn}},
		{name: "visitor on profile", route: model.RouteProfile, want: model.Decision{RedirectTo: model.RouteSignIn}},
		{name: "visitor on unknown route", route: "checkout", want: model.Decision{RedirectTo: model.RouteSignIn}},
		{name: "user on signin", loggedIn: true, route: model.RouteSignIn, want: model.Decision{RedirectTo: model.RouteProducts}},
		{name: "user on signup", loggedIn: true, route: model.RouteSignUp, want: model.Decision{RedirectTo: model.RouteProducts}},
		{name: "user on products", loggedIn: true, route: model.RouteProducts, want: model.Decision{Allowed: true}},
		{name: "user on profile", loggedIn: true, route: model.RouteProfile, want: model.Decision{Allowed: true}},
		{name: "user on unknown route", loggedIn: true, route: "", want: model.Decision{RedirectTo: model.RouteSignIn}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(staticSession(tt.loggedIn))
			assert.Equal(t, tt.want, g.Check(tt.route))
		})
	}
}

func TestGuard_FollowsSession(t *testing.T) {
	s, _ := newTestSession(t)
	g := NewGuard(s)

	assert.False(t, g.Check(model.RouteProducts).Allowed)
	assert.Equal(t, model.RouteSignIn, g.Check(model.RouteProducts).RedirectTo)
}
