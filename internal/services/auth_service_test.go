package services

import (
	"testing"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup(t *testing.T) {
	env := setupServiceTest(t)

	user, err := env.authService.Signup(SignupInput{
		Email:    "Alice@Example.com",
		Name:     "Alice",
		Password: "supersecret",
	})
	require.NoError(t, err)
	// Emails are normalized to lowercase.
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEmpty(t, user.Color)
	require.NotEqual(t, "supersecret", user.PasswordHash)

	// Signup provisions a personal workspace with an owner membership.
	memberships, err := env.workspaceRepo.ListMembersByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	require.Equal(t, models.RoleOwner, memberships[0].Role)

	_, err = env.authService.Signup(SignupInput{
		Email:    "alice@example.com",
		Name:     "Alice Again",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = env.authService.Signup(SignupInput{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Login(t *testing.T) {
	env := setupServiceTest(t)

	_, err := env.authService.Signup(SignupInput{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	user, err := env.authService.Login(LoginInput{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)

	_, err = env.authService.Login(LoginInput{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.authService.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
