package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/inventory_admin/internal/hash"
	"github.com/Skotchmaster/inventory_admin/internal/logging"
	"github.com/Skotchmaster/inventory_admin/internal/models"
	"github.com/Skotchmaster/inventory_admin/internal/mykafka"
	"github.com/Skotchmaster/inventory_admin/internal/tokens"
)

type AuthService struct {
	Users         *UserService
	Hasher        hash.Hasher
	SessionSecret []byte
	SessionTTL    time.Duration
	Events        mykafka.Publisher
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    uint
	Name      string
}

type UserEvent struct {
	Type   string `json:"type"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// Login looks for a user with the given name whose stored password accepts
// password and opens a session for the first match.
func (s *AuthService) Login(ctx context.Context, name, password string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", name)

	if name == "" || password == "" {
		l.Warn("login failed", "status", 401, "reason", "empty credentials")
		return nil, ErrInvalidCredentials
	}

	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	var found *models.User
	for i := range users {
		if users[i].Name == name && s.Hasher.Check(users[i].Password, password) {
			found = &users[i]
			break
		}
	}
	if found == nil {
		l.Warn("login failed", "status", 401, "reason", "invalid username or password")
		return nil, ErrInvalidCredentials
	}

	exp := time.Now().Add(s.SessionTTL)
	token, err := tokens.NewSession(found.ID, found.Name, exp, s.SessionSecret)
	if err != nil {
		l.Error("login failed", "status", 500, "error", err)
		return nil, fmt.Errorf("sign session: %w", err)
	}

	s.publish(ctx, UserEvent{Type: "user_logged_in", UserID: found.ID, Name: found.Name})
	l.Info("logged_in", "user_id", found.ID)
	return &Session{Token: token, ExpiresAt: exp, UserID: found.ID, Name: found.Name}, nil
}

// Register creates a user with the default role. It does not log them in.
func (s *AuthService) Register(ctx context.Context, name, password string) (*models.User, error) {
	user, err := s.Users.Create(ctx, &models.User{Name: name, Password: password})
	if err != nil {
		return user, err
	}

	s.publish(ctx, UserEvent{Type: "user_registered", UserID: user.ID, Name: user.Name})
	return user, nil
}

func (s *AuthService) publish(ctx context.Context, ev UserEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, mykafka.TopicUserEvents, fmt.Sprint(ev.UserID), ev); err != nil {
		logging.FromContext(ctx).Warn("publish_failed", "svc", "auth", "event", ev.Type, "error", err)
	}
}
