package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
	"github.com/nunu-app/marketplace-api/pkg/password"
	"github.com/nunu-app/marketplace-api/pkg/token"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
	creates int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.creates++
	created := cloneUser(user)
	created.ID = "user-" + strconv.Itoa(r.creates)
	r.users[created.Email] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func newAuthSvc(t *testing.T, repo ports.UserRepository) (*AuthService, *token.Manager) {
	t.Helper()
	tokens, err := token.NewManager("secret", token.DefaultTTL)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return NewAuthService(repo, password.NewHasherWithCost(bcrypt.MinCost), tokens, zerolog.Nop()), tokens
}

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{Name: "Alice", Email: email, Password: "pass123", Role: domain.RoleProvider}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	user, err := svc.Register(context.Background(), registerInput("alice@example.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" || user.Role != domain.RoleProvider || user.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	if _, err := svc.Register(context.Background(), registerInput("bob@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob@example.com")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one create, got %d", repo.creates)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo())

	in := registerInput("carol@example.com")
	in.Role = "ADMIN"

	var ve *domain.ValidationError
	if _, err := svc.Register(context.Background(), in); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAuthService_Register_LookupFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc, _ := newAuthSvc(t, repo)

	_, err := svc.Register(context.Background(), registerInput("dan@example.com"))
	if err == nil || errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthSvc(t, repo)

	registered, err := svc.Register(context.Background(), registerInput("erin@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "erin@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != registered.ID {
		t.Fatalf("subject = %q, want %q", claims.Subject, registered.ID)
	}
	if claims.Role != string(domain.RoleProvider) || claims.Name != "Alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)
	_, _ = svc.Register(context.Background(), registerInput("frank@example.com"))

	_, wrongPassword := svc.Login(context.Background(), "frank@example.com", "badpass")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "pass123")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("timeout")
	svc, _ := newAuthSvc(t, repo)

	_, err := svc.Login(context.Background(), "x@example.com", "pass123")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
