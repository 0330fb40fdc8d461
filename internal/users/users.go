// Package users holds local accounts used for login.
package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/uc-planner/internal/validation"
)

const (
	RoleStudent   = "student"
	RoleCounselor = "counselor"
	RoleAdmin     = "admin"

	defaultBcryptCost = 12
	minPasswordLength = 8
	maxUsernameLength = 64
)

var (
	ErrWrongPassword      = errors.New("incorrect old password")
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

type Store interface {
	Create(ctx context.Context, u User) (User, error) // ErrUsernameTaken on duplicates
	Get(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context, role string) ([]User, error) // empty role lists everyone
	SetPasswordHash(ctx context.Context, id int64, hash string) error
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	var v validation.Error
	name := strings.TrimSpace(c.Username)
	switch {
	case name == "":
		v.Add("username", "Username is required")
	case len(name) > maxUsernameLength:
		v.Add("username", "Username must be at most 64 characters")
	}
	if len(c.Password) < minPasswordLength {
		v.Add("password", "Password must be at least 8 characters")
	}
	return v.Err()
}

// Service registers and authenticates users against a Store.
type Service struct {
	store Store
	cost  int
}

// NewService uses bcrypt cost 12 when cost <= 0.
func NewService(store Store, cost int) *Service {
	if cost <= 0 {
		cost = defaultBcryptCost
	}
	return &Service{store: store, cost: cost}
}

func (s *Service) Register(ctx context.Context, c Credentials) (User, error) {
	if err := c.Validate(); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.cost)
	if err != nil {
		return User{}, err
	}
	return s.store.Create(ctx, User{
		Username:     strings.TrimSpace(c.Username),
		Role:         RoleStudent,
		PasswordHash: string(hash),
	})
}

// Authenticate returns ErrInvalidCredentials for unknown users and bad
// passwords alike.
func (s *Service) Authenticate(ctx context.Context, c Credentials) (User, error) {
	u, err := s.store.GetByUsername(ctx, strings.TrimSpace(c.Username))
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(c.Password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, role string) ([]User, error) {
	return s.store.List(ctx, role)
}

// ChangePassword replaces the password of user id after checking the old one.
func (s *Service) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		var v validation.Error
		v.Add("new_password", "Password must be at least 8 characters")
		return v.Err()
	}
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return err
	}
	return s.store.SetPasswordHash(ctx, id, string(hash))
}

// SeedAdmin makes sure an admin account with the given bcrypt hash exists.
// An existing account with that username is left untouched.
func SeedAdmin(ctx context.Context, store Store, username, passwordHash string) (User, error) {
	if username == "" || passwordHash == "" {
		return User{}, errors.New("users: admin username and hash required")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return User{}, errors.New("users: admin hash is not a bcrypt hash")
	}
	u, err := store.GetByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	u, err = store.Create(ctx, User{Username: username, Role: RoleAdmin, PasswordHash: passwordHash})
	if errors.Is(err, ErrUsernameTaken) {
		return store.GetByUsername(ctx, username)
	}
	return u, err
}
