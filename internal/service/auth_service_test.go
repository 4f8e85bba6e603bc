package service

import (
	"testing"
	"time"

	"go-stock-api/internal/apperr"
	"go-stock-api/internal/config"
	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"
	"go-stock-api/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthFixture(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	jwt := config.JWTConfig{Secret: "test-secret", TTL: time.Hour}
	return NewAuthService(userRepo, jwt), db
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(&RegisterRequest{
		FullName: "John Smith",
		Email:    "john@stock.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// Self-registration never grants admin access.
	assert.Equal(t, model.RoleUser, user.Role)
	assert.True(t, user.CheckPassword("password123"))

	_, err = svc.Register(&RegisterRequest{
		FullName: "John Again", Email: "john@stock.com", Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestLogin(t *testing.T) {
	svc, db := newAuthFixture(t)
	user := seedUser(t, db, "admin@stock.com", model.RoleAdmin)

	resp, err := svc.Login(&LoginRequest{Email: "admin@stock.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := token.Verify([]byte("test-secret"), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(model.RoleAdmin), claims.Role)
}

func TestLoginRejections(t *testing.T) {
	svc, db := newAuthFixture(t)
	seedUser(t, db, "admin@stock.com", model.RoleAdmin)

	// Wrong password and unknown account fail identically.
	for _, req := range []*LoginRequest{
		{Email: "admin@stock.com", Password: "wrong"},
		{Email: "nobody@stock.com", Password: "password123"},
	} {
		_, err := svc.Login(req)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
		assert.Equal(t, "invalid email or password", err.Error())
	}
}

func TestMe(t *testing.T) {
	svc, db := newAuthFixture(t)
	user := seedUser(t, db, "admin@stock.com", model.RoleAdmin)

	me, err := svc.Me(user.Identity())
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)

	_, err = svc.Me(model.Identity{})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}
