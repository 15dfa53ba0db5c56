/*
Package session holds the client's authentication state.

The Store is an explicit, injectable state container with three states:
anonymous (no user), loading (an auth operation is in flight) and
authenticated (a user is present). It owns the persisted token and user
snapshot through its collaborators and triggers navigation on the transitions
that change screens.

The store performs no internal locking: callers issue at most one
session-affecting operation at a time (the submit throttle and the synchronous
CLI guarantee that here).
*/
package session

import (
	"context"

	"alegarazh/internal/app/model"
	"alegarazh/internal/pkg/logx"
)

// Navigation targets used after auth transitions.
const (
	RouteHome  = "/"
	RouteLogin = "/auth/login"
)

// API is the backend surface the session store needs; *gateway.Client
// implements it.
type API interface {
	Login(ctx context.Context, login, password string) (*model.AuthResponse, error)
	Register(ctx context.Context, data model.RegisterRequest) (*model.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, data model.ProfileUpdate) (*model.User, error)

	Token() string
	SetToken(token string) error
	ClearCredentials() error
}

// Snapshots persists the cached user profile; storage.Store implements it.
type Snapshots interface {
	SaveUser(user *model.User) error
}

// Navigator is told where to go after a successful transition. The CLI prints
// the destination; a UI would switch screens.
type Navigator interface {
	Navigate(route string)
}

// Store is the session state container.
type Store struct {
	api  API
	snap Snapshots
	nav  Navigator

	user    *model.User
	loading bool
}

// New creates an anonymous session store.
func New(api API, snap Snapshots, nav Navigator) *Store {
	return &Store{api: api, snap: snap, nav: nav}
}

// User returns the authenticated user, nil when anonymous.
func (s *Store) User() *model.User {
	return s.user
}

// IsLoading reports whether an auth operation is in flight.
func (s *Store) IsLoading() bool {
	return s.loading
}

// Authenticated reports whether a user is present.
func (s *Store) Authenticated() bool {
	return s.user != nil
}

// Bootstrap attempts a silent session restore at application start. Without a
// persisted token the store stays anonymous; with one, the profile is fetched
// and an invalid token is discarded.
func (s *Store) Bootstrap(ctx context.Context) {
	s.loading = true
	defer func() { s.loading = false }()

	token := s.api.Token()
	if token == "" {
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		logx.Warn("stored token rejected, clearing credentials", "error", err)
		if clearErr := s.api.ClearCredentials(); clearErr != nil {
			logx.Error(clearErr, "failed to clear credentials after rejected token")
		}
		return
	}

	s.user = user
}

// Login authenticates and, on success, persists the token and user snapshot
// and navigates home. On failure the store stays in its prior state and the
// error goes back to the caller, who surfaces it on the originating field.
func (s *Store) Login(ctx context.Context, login, password string) error {
	s.loading = true
	defer func() { s.loading = false }()

	res, err := s.api.Login(ctx, login, password)
	if err != nil {
		return err
	}

	s.completeAuth(res)
	return nil
}

// Register creates an account; the success and failure paths mirror Login.
func (s *Store) Register(ctx context.Context, data model.RegisterRequest) error {
	s.loading = true
	defer func() { s.loading = false }()

	res, err := s.api.Register(ctx, data)
	if err != nil {
		return err
	}

	s.completeAuth(res)
	return nil
}

// Logout notifies the server best-effort, then unconditionally clears the
// local session and navigates to the login screen. Server failures are logged
// and swallowed: logout always succeeds locally.
func (s *Store) Logout(ctx context.Context) {
	s.loading = true
	defer func() { s.loading = false }()

	if err := s.api.Logout(ctx); err != nil {
		logx.Warn("logout request failed, clearing local session anyway", "error", err)
	}

	s.user = nil
	if err := s.api.ClearCredentials(); err != nil {
		logx.Error(err, "failed to clear credentials on logout")
	}

	s.nav.Navigate(RouteLogin)
}

// UpdateUser applies a partial profile change. From the anonymous state it is
// a no-op. On success the user is replaced and the snapshot re-persisted; on
// failure the state is untouched and the error propagates.
func (s *Store) UpdateUser(ctx context.Context, data model.ProfileUpdate) error {
	if s.user == nil {
		return nil
	}

	updated, err := s.api.UpdateProfile(ctx, data)
	if err != nil {
		return err
	}

	s.user = updated
	if err := s.snap.SaveUser(updated); err != nil {
		logx.Warn("failed to persist updated user snapshot", "error", err)
	}

	return nil
}

// completeAuth persists the freshly issued token and user snapshot, enters
// the authenticated state and navigates home.
func (s *Store) completeAuth(res *model.AuthResponse) {
	if err := s.api.SetToken(res.Token); err != nil {
		logx.Warn("failed to persist token", "error", err)
	}

	user := res.User
	s.user = &user

	if err := s.snap.SaveUser(&user); err != nil {
		logx.Warn("failed to persist user snapshot", "error", err)
	}

	s.nav.Navigate(RouteHome)
}
