package tests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store/pkg/domain/model"
	"store/pkg/domain/service"
)

func setupAccounts(t *testing.T) (service.AccountService, *mockUserRepository, *mockEventDispatcher) {
	t.Helper()
	clock := &fakeClock{current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	repo := newMockUsers()
	dispatcher := &mockEventDispatcher{}
	svc := service.NewAccountService(repo, dispatcher, clock.Now)
	return svc, repo, dispatcher
}

func TestSignUp(t *testing.T) {
	svc, repo, dispatcher := setupAccounts(t)

	user, err := svc.SignUp("alice", "pw")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Orders)

	stored, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	require.Len(t, dispatcher.events, 1)
	event, ok := dispatcher.events[0].(model.UserRegistered)
	require.True(t, ok)
	assert.Equal(t, "alice", event.Username)
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	svc, _, _ := setupAccounts(t)

	_, err := svc.SignUp("alice", "pw")
	require.NoError(t, err)

	// Exact, case-sensitive match only.
	_, err = svc.SignUp("alice", "other")
	assert.ErrorIs(t, err, model.ErrUsernameTaken)

	_, err = svc.SignUp("Alice", "pw")
	assert.NoError(t, err)
}

func TestSignIn(t *testing.T) {
	svc, _, dispatcher := setupAccounts(t)
	created, err := svc.SignUp("alice", "pw")
	require.NoError(t, err)
	dispatcher.Reset()

	t.Run("Round trip", func(t *testing.T) {
		user, err := svc.SignIn("alice", "pw")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)

		require.Len(t, dispatcher.events, 1)
		_, ok := dispatcher.events[0].(model.UserSignedIn)
		assert.True(t, ok)
	})

	t.Run("Wrong password", func(t *testing.T) {
		dispatcher.Reset()
		_, err := svc.SignIn("alice", "wrong")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		assert.Empty(t, dispatcher.events)
	})

	t.Run("Unknown user reports the same error", func(t *testing.T) {
		_, err := svc.SignIn("bob", "pw")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}
