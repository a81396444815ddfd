package model

// Route names a view of the surrounding application.
type Route string

const (
	RouteSignIn   Route = "signin"
	RouteSignUp   Route = "signup"
	RouteProducts Route = "products"
	RouteProfile  Route = "profile"
)

// Decision is the outcome of a route check. RedirectTo is set when the
// route is not allowed.
type Decision struct {
	Allowed    bool
	RedirectTo Route
}
