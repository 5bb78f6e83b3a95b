package user

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskmanager/pkg/generator"
	"taskmanager/pkg/session"
)

// TokenIssuer mints stateless access tokens. Satisfied by token.Manager.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// Auth is the result of a successful signup or login: the user plus one
// credential of each kind.
type Auth struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

type ServiceInterface interface {
	Signup(email, password string) (*Auth, error)
	Login(email, password string) (*Auth, error)
	NewAccessToken(userID string) (string, error)
}

type Service struct {
	Repo     Repository
	Sessions session.Repository
	Tokens   TokenIssuer
}

func NewService(repo Repository, sessions session.Repository, tokens TokenIssuer) *Service {
	return &Service{Repo: repo, Sessions: sessions, Tokens: tokens}
}

func (s *Service) Signup(email, password string) (*Auth, error) {
	exist, err := s.Repo.FindByEmail(email)
	if exist != nil && err == nil {
		return nil, ErrEmailTaken
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// The hash is computed once, here; the raw password goes no further.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password error: %w", err)
	}

	userID, err := generator.GenerateRandomID(generator.LenID)
	if err != nil {
		return nil, fmt.Errorf("UserID gen error: %w", err)
	}

	newUser := &User{
		ID:       userID,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.Repo.Create(newUser); err != nil {
		return nil, err
	}

	return s.issueCredentials(newUser)
}

func (s *Service) Login(email, password string) (*Auth, error) {
	u, err := s.Repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueCredentials(u)
}

func (s *Service) NewAccessToken(userID string) (string, error) {
	accessToken, _, err := s.Tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("access token issue error: %w", err)
	}
	return accessToken, nil
}

// issueCredentials creates the session first and only then the access token;
// a failed session must never leave the caller holding a bare access token.
func (s *Service) issueCredentials(u *User) (*Auth, error) {
	sess, err := s.Sessions.Create(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("access token issue error: %w", err)
	}

	return &Auth{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: sess.Token,
	}, nil
}
