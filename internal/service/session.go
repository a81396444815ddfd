package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/shopfront/internal/logger"
	"github.com/dtroode/shopfront/internal/model"
	"github.com/dtroode/shopfront/internal/storage/kv"
)

// Session keeps the registered users and the logged-in user in a kv.Store.
type Session struct {
	mu          sync.Mutex
	store       *kv.Store
	currentUser *model.User
	logger      *logger.Logger
}

// NewSession restores the logged-in user, if any, from store.
func NewSession(ctx context.Context, store *kv.Store, logger *logger.Logger) (*Session, error) {
	s := &Session{
		store:  store,
		logger: logger,
	}

	var user model.User
	ok, err := store.Read(ctx, model.CurrentUserKey, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if ok {
		s.currentUser = &user
		logger.Debug("Session service: session restored",
			"user_id", user.ID.String())
	}

	return s, nil
}

// Signup registers a new user. It does not log the user in.
func (s *Session) Signup(ctx context.Context, fullName, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("Session service: registering user",
		"email", email)

	users, err := s.users(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.Email == email {
			s.logger.Info("Session service: email already registered",
				"email", email)
			return model.ErrDuplicateEmail
		}
	}

	users = append(users, model.User{
		ID:       uuid.New(),
		FullName: fullName,
		Email:    email,
		Password: password,
	})

	if err := s.store.Write(ctx, model.UsersKey, users); err != nil {
		s.logger.Error("Session service: failed to save users",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to save users: %w", err)
	}

	s.logger.Info("Session service: user registered",
		"email", email)

	return nil
}

// Login starts a session for the user with exactly matching credentials.
func (s *Session) Login(ctx context.Context, email, password string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return model.User{}, err
	}

	for _, u := range users {
		if u.Email != email || u.Password != password {
			continue
		}

		if err := s.store.Write(ctx, model.CurrentUserKey, u); err != nil {
			s.logger.Error("Session service: failed to save session",
				"email", email,
				"error", err.Error())
			return model.User{}, fmt.Errorf("failed to save session: %w", err)
		}
		s.currentUser = &u

		s.logger.Info("Session service: user logged in",
			"user_id", u.ID.String())

		return u, nil
	}

	s.logger.Info("Session service: invalid credentials",
		"email", email)

	return model.User{}, model.ErrInvalidCredentials
}

// Logout ends the session. Logging out without a session is a no-op.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentUser = nil
	if err := s.store.Remove(ctx, model.CurrentUserKey); err != nil {
		s.logger.Error("Session service: failed to remove session",
			"error", err.Error())
		return fmt.Errorf("failed to remove session: %w", err)
	}

	s.logger.Info("Session service: user logged out")

	return nil
}

// UpdateProfile changes the name and email of the logged-in user.
// The email is not checked for uniqueness.
func (s *Session) UpdateProfile(ctx context.Context, fullName, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return model.User{}, model.ErrNotLoggedIn
	}
	original := s.currentUser.Email

	users, err := s.users(ctx)
	if err != nil {
		return model.User{}, err
	}

	idx := -1
	for i, u := range users {
		if u.Email == original {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Warn("Session service: logged-in user is not registered",
			"email", original)
		return model.User{}, fmt.Errorf("%w: %s", model.ErrUserNotFound, original)
	}

	users[idx].FullName = fullName
	users[idx].Email = email
	updated := users[idx]

	if err := s.store.Write(ctx, model.UsersKey, users); err != nil {
		s.logger.Error("Session service: failed to save users",
			"email", original,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to save users: %w", err)
	}
	if err := s.store.Write(ctx, model.CurrentUserKey, updated); err != nil {
		s.logger.Error("Session service: failed to save session",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to save session: %w", err)
	}
	s.currentUser = &updated

	s.logger.Info("Session service: profile updated",
		"user_id", updated.ID.String())

	return updated, nil
}

// CurrentUser returns the logged-in user.
func (s *Session) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return model.User{}, false
	}
	return *s.currentUser, true
}

func (s *Session) IsLoggedIn() bool {
	_, ok := s.CurrentUser()
	return ok
}

func (s *Session) users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	found, err := s.store.Read(ctx, model.UsersKey, &users)
	if err != nil {
		s.logger.Error("Session service: failed to load users",
			"error", err.Error())
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if !found {
		return nil, nil
	}
	return users, nil
}
