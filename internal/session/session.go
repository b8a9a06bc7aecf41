// Package session establishes who is operating the connection. Admins are
// provisioned ahead of time; regular users are registered on first login.
package session

import (
	"context"
	"database/sql"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/matchpoint-labs/wtadb/internal/database"
	"github.com/matchpoint-labs/wtadb/internal/fault"
	"github.com/matchpoint-labs/wtadb/internal/pubsub"
	"github.com/matchpoint-labs/wtadb/internal/query"
	"github.com/matchpoint-labs/wtadb/internal/validate"
)

// State is where a login attempt ended up.
type State string

const (
	// StateStart is the zero state before any attempt.
	StateStart State = "start"
	// StateRegistered means the attempt created the account and logged it in.
	StateRegistered State = "registered"
	// StateAuthenticated means the credentials matched an existing account.
	StateAuthenticated State = "authenticated"
	// StateRejected means the credentials were refused. No lockout applies;
	// the caller may simply try again.
	StateRejected State = "rejected"
)

// LoginResult reports the outcome of one login attempt.
type LoginResult struct {
	State  State
	UserID string
}

// Authenticated reports whether the attempt established a session.
func (r LoginResult) Authenticated() bool {
	return r.State == StateAuthenticated || r.State == StateRegistered
}

// Service performs credential checks against the user_info table.
type Service struct {
	db     *sql.DB
	pubsub pubsub.PubSubClient
}

// NewService creates a session service over the role's connection.
func NewService(db *sql.DB, ps pubsub.PubSubClient) *Service {
	return &Service{db: db, pubsub: ps}
}

// Login authenticates username/password for the requested role.
//
// Admin logins must match a provisioned admin account. User logins match an
// existing account, or register a fresh one when the username is unseen.
// Every refusal is StateRejected with a fault.KindAuth error; the password
// itself never appears in errors or logs.
func (s *Service) Login(ctx context.Context, role database.Role, username, password string) (LoginResult, error) {
	name, err := validate.Name(username)
	if err != nil {
		return LoginResult{State: StateRejected}, fault.Newf(fault.KindAuth, "login", "username must not be empty")
	}
	if password == "" {
		return LoginResult{State: StateRejected}, fault.Newf(fault.KindAuth, "login", "password must not be empty")
	}

	stmt, err := query.Build(query.OpAuthenticateLookup, query.Params{Username: name})
	if err != nil {
		return LoginResult{State: StateRejected}, err
	}

	var userID, hash string
	var isAdmin int
	err = s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&userID, &hash, &isAdmin)
	if err == sql.ErrNoRows {
		if role == database.RoleAdmin {
			// Admin accounts are never created through login.
			return LoginResult{State: StateRejected}, fault.Newf(fault.KindAuth, "login", "unknown admin account")
		}
		return s.register(ctx, name, password)
	}
	if err != nil {
		return LoginResult{State: StateRejected}, fault.New(fault.KindQuery, "login", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return LoginResult{State: StateRejected}, fault.Newf(fault.KindAuth, "login", "wrong password for %q", name)
	}
	if role == database.RoleAdmin && isAdmin == 0 {
		return LoginResult{State: StateRejected}, fault.Newf(fault.KindAuth, "login", "%q is not an admin account", name)
	}

	log.Debug("Session established", "user", name, "role", role)
	return LoginResult{State: StateAuthenticated, UserID: userID}, nil
}

// register creates a user account for an unseen username and logs it in.
func (s *Service) register(ctx context.Context, username, password string) (LoginResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return LoginResult{State: StateRejected}, fault.New(fault.KindAuth, "register", err)
	}

	userID := uuid.NewString()
	stmt, err := query.Build(query.OpRegisterUser, query.Params{
		UserID:       userID,
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      false,
	})
	if err != nil {
		return LoginResult{State: StateRejected}, err
	}
	if _, err := s.db.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
		return LoginResult{State: StateRejected}, fault.New(fault.KindQuery, "register", err)
	}

	log.Info("Registered new user", "user", username)
	if err := s.pubsub.SendMessage(string(pubsub.EventUserRegistered), pubsub.UserRegisteredEvent{
		UserID:   userID,
		Username: username,
	}); err != nil {
		log.Error("Failed to publish registration event", "error", err)
	}
	return LoginResult{State: StateRegistered, UserID: userID}, nil
}
