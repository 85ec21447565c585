package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photoshare-api/internal/models"
	"photoshare-api/internal/repository"
	"photoshare-api/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
}

// dummyHash is compared against when the email is unknown so that login
// takes the same time whether or not the account exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type UserService struct {
	store  UserStore
	tokens *utils.JWTUtil
	log    *logrus.Logger
}

func NewUserService(store UserStore, tokens *utils.JWTUtil, log *logrus.Logger) *UserService {
	return &UserService{store: store, tokens: tokens, log: log}
}

// Register creates a user with a bcrypt-hashed password. The plaintext is
// never persisted.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithField("email", user.Email).Info("user registered")
	return user, nil
}

// Login verifies the credential and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, ErrInvalidCredential
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredential
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.WithField("userId", user.ID).Info("user logged in")
	return token, user, nil
}

// Profile resolves the caller identity carried by the token back to the
// stored user record.
func (s *UserService) Profile(ctx context.Context, userID int) (*models.User, error) {
	return s.store.UserByID(ctx, userID)
}
