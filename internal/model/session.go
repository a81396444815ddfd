package model

// Keys under which the session store keeps its state.
const (
	UsersKey       = "users"
	CurrentUserKey = "currentUser"
)
