package user_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"taskmanager/pkg/session"
	"taskmanager/pkg/user"
)

type mockRepo struct {
	mock.Mock
}

type mockSessions struct {
	mock.Mock
}

type mockTokens struct {
	mock.Mock
}

func (m *mockRepo) Create(u *user.User) error {
	return m.Called(u).Error(0)
}

func (m *mockRepo) FindByEmail(email string) (*user.User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) FindByID(id string) (*user.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessions) Create(userID string) (*session.Session, error) {
	args := m.Called(userID)
	if s := args.Get(0); s != nil {
		return s.(*session.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessions) FindByUserIDAndToken(userID, token string) (*session.Session, error) {
	args := m.Called(userID, token)
	if s := args.Get(0); s != nil {
		return s.(*session.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessions) Invalidate(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *mockTokens) Issue(userID string) (string, time.Time, error) {
	args := m.Called(userID)
	return args.String(0), time.Now().Add(15 * time.Minute), args.Error(1)
}

func TestService_Signup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		sessions := new(mockSessions)
		tokens := new(mockTokens)
		svc := user.NewService(repo, sessions, tokens)

		repo.On("FindByEmail", "a@x.com").Return(nil, user.ErrNotFound)
		repo.On("Create", mock.AnythingOfType("*user.User")).Return(nil)
		sessions.On("Create", mock.Anything).Return(&session.Session{Token: "refresh-secret"}, nil)
		tokens.On("Issue", mock.Anything).Return("access-jwt", nil)

		a, err := svc.Signup("a@x.com", "secret1")

		assert.NoError(t, err)
		assert.Equal(t, "a@x.com", a.User.Email)
		assert.Equal(t, "access-jwt", a.AccessToken)
		assert.Equal(t, "refresh-secret", a.RefreshToken)

		// The stored password is a bcrypt hash of the input, never the input.
		assert.NotEqual(t, "secret1", a.User.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.User.Password), []byte("secret1")))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(a.User.Password), []byte("secret2")))
	})

	t.Run("email already exists", func(t *testing.T) {
		repo := new(mockRepo)
		sessions := new(mockSessions)
		tokens := new(mockTokens)
		svc := user.NewService(repo, sessions, tokens)

		repo.On("FindByEmail", "a@x.com").Return(&user.User{Email: "a@x.com"}, nil)

		a, err := svc.Signup("a@x.com", "secret1")

		assert.ErrorIs(t, err, user.ErrEmailTaken)
		assert.Nil(t, a)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("losing a signup race still reads as a taken email", func(t *testing.T) {
		repo := new(mockRepo)
		sessions := new(mockSessions)
		tokens := new(mockTokens)
		svc := user.NewService(repo, sessions, tokens)

		// The precheck misses because the winner inserts in between; the
		// insert then trips the unique index.
		repo.On("FindByEmail", "a@x.com").Return(nil, user.ErrNotFound)
		repo.On("Create", mock.AnythingOfType("*user.User")).Return(user.ErrEmailTaken)

		a, err := svc.Signup("a@x.com", "secret1")

		assert.ErrorIs(t, err, user.ErrEmailTaken)
		assert.Nil(t, a)
		sessions.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("no access token without a session", func(t *testing.T) {
		repo := new(mockRepo)
		sessions := new(mockSessions)
		tokens := new(mockTokens)
		svc := user.NewService(repo, sessions, tokens)

		repo.On("FindByEmail", "a@x.com").Return(nil, user.ErrNotFound)
		repo.On("Create", mock.AnythingOfType("*user.User")).Return(nil)
		sessions.On("Create", mock.Anything).Return(nil, errors.New("db down"))

		a, err := svc.Signup("a@x.com", "secret1")

		assert.Error(t, err)
		assert.Nil(t, a)
		tokens.AssertNotCalled(t, "Issue", mock.Anything)
	})
}

func TestService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := &user.User{
		ID:       "user123",
		Email:    "a@x.com",
		Password: string(hashed),
	}

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		sessions := new(mockSessions)
		tokens := new(mockTokens)
		svc := user.NewService(repo, sessions, tokens)

		repo.On("FindByEmail", "a@x.com").Return(stored, nil)
		sessions.On("Create", "user123").Return(&session.Session{Token: "refresh-secret"}, nil)
		tokens.On("Issue", "user123").Return("access-jwt", nil)

		a, err := svc.Login("a@x.com", "correct")

		assert.NoError(t, err)
		assert.Equal(t, "user123", a.User.ID)
		assert.Equal(t, "refresh-secret", a.RefreshToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(mockRepo)
		sessions := new(mockSessions)
		tokens := new(mockTokens)
		svc := user.NewService(repo, sessions, tokens)

		repo.On("FindByEmail", "ghost@x.com").Return(nil, user.ErrNotFound)

		a, err := svc.Login("ghost@x.com", "whatever")

		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
		assert.Nil(t, a)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockRepo)
		sessions := new(mockSessions)
		tokens := new(mockTokens)
		svc := user.NewService(repo, sessions, tokens)

		repo.On("FindByEmail", "a@x.com").Return(stored, nil)

		a, err := svc.Login("a@x.com", "wrong")

		// Same error as an unknown email; nothing leaks.
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
		assert.Nil(t, a)
		sessions.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestService_NewAccessToken(t *testing.T) {
	repo := new(mockRepo)
	sessions := new(mockSessions)
	tokens := new(mockTokens)
	svc := user.NewService(repo, sessions, tokens)

	tokens.On("Issue", "user123").Return("fresh-jwt", nil)

	accessToken, err := svc.NewAccessToken("user123")
	assert.NoError(t, err)
	assert.Equal(t, "fresh-jwt", accessToken)
}
