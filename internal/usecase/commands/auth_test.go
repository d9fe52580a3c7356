//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/jwt"
	"salon-scheduler/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, exists := r.byEmail[u.Email().Value()]; exists {
		return infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
	}
	r.byEmail[u.Email().Value()] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email user.Email) (*user.User, error) {
	u, ok := r.byEmail[email.Value()]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ *user.User) error {
	return nil
}

func newAuthFixture() (*fakeUserRepo, commands.AuthCommands, *jwt.Service) {
	repo := newFakeUserRepo()
	jwtService := jwt.NewService("test-secret", time.Hour)
	return repo, commands.NewAuthCommands(repo, jwtService), jwtService
}

func registerInput() commands.RegisterInput {
	return commands.RegisterInput{
		Email:     "ana@salon.test",
		Password:  "long-enough-password",
		FirstName: "Ana",
		LastName:  "Silva",
		Role:      "receptionist",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues a usable token", func(t *testing.T) {
		_, auth, jwtService := newAuthFixture()
		result, err := auth.Register(ctx, registerInput())
		require.NoError(t, err)

		assert.Equal(t, "ana@salon.test", result.User.Email)
		assert.Equal(t, "receptionist", result.User.Role)

		claims, err := jwtService.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, claims.UserID)
		assert.Equal(t, "receptionist", claims.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, auth, _ := newAuthFixture()
		_, err := auth.Register(ctx, registerInput())
		require.NoError(t, err)

		_, err = auth.Register(ctx, registerInput())
		assert.ErrorIs(t, err, errs.ErrEmailTaken)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, auth, _ := newAuthFixture()

		in := registerInput()
		in.Password = "short"
		_, err := auth.Register(ctx, in)
		assert.ErrorIs(t, err, errs.ErrValidation)

		in = registerInput()
		in.Role = "manager"
		_, err = auth.Register(ctx, in)
		assert.ErrorIs(t, err, errs.ErrValidation)

		in = registerInput()
		in.FirstName = ""
		_, err = auth.Register(ctx, in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, auth commands.AuthCommands, email, pass string) (*commands.LoginResult, error) {
		t.Helper()
		creds, err := user.NewCredentials(email, pass)
		require.NoError(t, err)
		return auth.Login(ctx, creds)
	}

	t.Run("success", func(t *testing.T) {
		_, auth, _ := newAuthFixture()
		_, err := auth.Register(ctx, registerInput())
		require.NoError(t, err)

		result, err := login(t, auth, "ana@salon.test", "long-enough-password")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, auth, _ := newAuthFixture()
		_, err := auth.Register(ctx, registerInput())
		require.NoError(t, err)

		_, err = login(t, auth, "ana@salon.test", "wrong-password-here")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, auth, _ := newAuthFixture()
		_, err := login(t, auth, "ghost@salon.test", "whatever-password")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}
