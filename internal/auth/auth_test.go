package auth

import (
	"context"
	"testing"
)

type fakeUserStorage struct {
	byEmail map[string]*User
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{byEmail: make(map[string]*User)}
}

func (f *fakeUserStorage) CreateUser(ctx context.Context, user *User) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStorage) GetUserByID(ctx context.Context, id string) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := NewPasswordAuthenticator(newFakeUserStorage())
	ctx := context.Background()

	user, err := a.Register(ctx, "Test@Example.com", "supersecret")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "test@example.com" {
		t.Errorf("Expected normalized email, got '%s'", user.Email)
	}
	if user.PasswordHash == "supersecret" {
		t.Error("Expected password to be hashed")
	}

	got, err := a.Authenticate(ctx, "test@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Expected the registered user, got %+v", got)
	}

	if _, err := a.Authenticate(ctx, "test@example.com", "wrongpassword"); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@example.com", "supersecret"); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	a := NewPasswordAuthenticator(newFakeUserStorage())
	ctx := context.Background()

	if _, err := a.Register(ctx, "test@example.com", "short"); err != ErrWeakPassword {
		t.Errorf("Expected ErrWeakPassword, got %v", err)
	}
	if _, err := a.Register(ctx, "  ", "supersecret"); err != ErrEmptyEmail {
		t.Errorf("Expected ErrEmptyEmail, got %v", err)
	}

	if _, err := a.Register(ctx, "test@example.com", "supersecret"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := a.Register(ctx, "test@example.com", "supersecret"); err != ErrEmailExists {
		t.Errorf("Expected ErrEmailExists, got %v", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret")
	user := &User{ID: "user-1", Email: "test@example.com"}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "test@example.com" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestJWTValidate_Invalid(t *testing.T) {
	m := NewJWTManager("test-secret")

	if _, err := m.Validate("not-a-token"); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}

	// A token signed with a different secret must be rejected.
	other := NewJWTManager("other-secret")
	token, err := other.Generate(&User{ID: "user-1", Email: "test@example.com"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := m.Validate(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
