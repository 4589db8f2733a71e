package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_admin/internal/hash"
	"github.com/Skotchmaster/inventory_admin/internal/models"
	"github.com/Skotchmaster/inventory_admin/internal/tokens"
)

var testSecret = []byte("test-session-secret")

func newTestAuthService(t *testing.T) (*AuthService, *fakePublisher) {
	t.Helper()
	svc, pub := newTestServices(t)
	return &AuthService{
		Users:         svc.Users,
		Hasher:        hash.Plain{},
		SessionSecret: testSecret,
		SessionTTL:    time.Hour,
		Events:        pub,
	}, pub
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	auth, pub := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NotNil(t, user.RoleID)
	assert.Equal(t, models.DefaultRoleID, *user.RoleID)

	sess, err := auth.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)

	claims, err := tokens.SessionClaimsFromToken(sess.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Name)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	assert.Equal(t, []string{"user_created", "user_registered", "user_logged_in"}, pub.types())
}

func TestAuthService_LoginFailures(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "nope"},
		{name: "unknown user", username: "bob", password: "pw1"},
		{name: "empty username", username: "", password: "pw1"},
		{name: "empty password", username: "alice", password: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Login(ctx, tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_LoginPicksMatchingPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "sam", "first")
	require.NoError(t, err)
	second, err := auth.Register(ctx, "sam", "second")
	require.NoError(t, err)

	sess, err := auth.Login(ctx, "sam", "second")
	require.NoError(t, err)
	assert.Equal(t, second.ID, sess.UserID)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	auth, _ := newTestAuthService(t)

	user, err := auth.Register(context.Background(), "", "")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "", user.Name)

	fields := FieldErrors(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "password")
}
