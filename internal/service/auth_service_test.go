package service

import (
	"errors"
	"testing"
	"time"

	"github.com/yourorg/vehiclecatalog/internal/domain"
	"github.com/yourorg/vehiclecatalog/internal/security/auth"
)

type memUserRepo struct {
	nextID     int64
	byID       map[int64]*domain.User
	byUsername map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[int64]*domain.User{}, byUsername: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(u *domain.User) error {
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.byID[u.ID] = u
	m.byUsername[u.Username] = u
	return nil
}

func (m *memUserRepo) GetByID(id int64) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) GetByUsername(username string) (*domain.User, error) {
	if u, ok := m.byUsername[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func newTestAuthService() (*AuthService, *memUserRepo) {
	repo := newMemUserRepo()
	tm := auth.NewTokenManager("test-secret", "vehiclecatalog", time.Hour)
	return NewAuthService(repo, tm, nil), repo
}

func TestCreateAccountAndIssueToken(t *testing.T) {
	s, _ := newTestAuthService()

	user, err := s.CreateAccount("alice", "password123")
	if err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	if user.ID == 0 || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password stored in plaintext")
	}

	// Duplicate username fails with a validation error on the field
	_, err = s.CreateAccount("alice", "password123")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["username"]; !ok {
		t.Fatalf("expected username field error, got %v", verr.Fields)
	}

	// Correct credentials return a token
	result, err := s.IssueToken("alice", "password123")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	// Wrong password never returns a token
	if _, err := s.IssueToken("alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	// Unknown and empty usernames are rejected the same way
	if _, err := s.IssueToken("nobody", "password123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := s.IssueToken("", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	s, _ := newTestAuthService()

	// Password shorter than 5 characters
	_, err := s.CreateAccount("bob", "1234")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Fatalf("expected password field error, got %v", verr.Fields)
	}

	// Empty username and password
	_, err = s.CreateAccount("", "")
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected both fields flagged, got %v", verr.Fields)
	}
}

func TestProfile(t *testing.T) {
	s, _ := newTestAuthService()

	user, err := s.CreateAccount("carol", "password123")
	if err != nil {
		t.Fatalf("create account failed: %v", err)
	}

	got, err := s.Profile(user.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if got.ID != user.ID || got.Username != "carol" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	if _, err := s.Profile(999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
