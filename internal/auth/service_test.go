package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/internal/users"
	"github.com/omarsadiq/tailorware-backend/pkg/config"
	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
	"github.com/omarsadiq/tailorware-backend/pkg/security"
)

type stubUserRepo struct {
	byEmail     map[string]*models.User
	created     []users.CreateUserDTO
	lastLoginID uuid.UUID
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	s.created = append(s.created, dto)
	user := dto.ToModel()
	user.ID = uuid.New()
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLoginID = id
	return nil
}

type stubSessionManager struct {
	generated []string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-token", nil
}

func testPasswordCfg() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testJWTCfg() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "tailorware",
		ExpirationMinutes: 30,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, sess *stubSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sess,
		JWTConfig:      testJWTCfg(),
		PasswordConfig: testPasswordCfg(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginSuccess(t *testing.T) {
	hash, err := security.HashPassword("correct horse battery", testPasswordCfg())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        "amira@tailorware.app",
		PasswordHash: hash,
		FullName:     "Amira S",
		Role:         enums.UserRoleStaff,
	}
	repo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	sess := &stubSessionManager{}
	svc := newTestService(t, repo, sess)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "amira@tailorware.app",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatal("expected user in response")
	}
	if repo.lastLoginID != user.ID {
		t.Fatal("expected last login recorded")
	}
	if len(sess.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sess.generated))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := security.HashPassword("right password!!", testPasswordCfg())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        "amira@tailorware.app",
		PasswordHash: hash,
		Role:         enums.UserRoleStaff,
	}
	repo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	svc := newTestService(t, repo, &stubSessionManager{})

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "amira@tailorware.app",
		Password: "wrong password!!",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*models.User{}}
	svc := newTestService(t, repo, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@tailorware.app",
		Password: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	existing := &models.User{ID: uuid.New(), Email: "taken@tailorware.app"}
	repo := &stubUserRepo{byEmail: map[string]*models.User{existing.Email: existing}}
	svc := newTestService(t, repo, &stubSessionManager{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@tailorware.app",
		Password: "super secret pass",
		FullName: "Dup User",
		Role:     "staff",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterCreatesStaff(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*models.User{}}
	svc := newTestService(t, repo, &stubSessionManager{})

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "New@Tailorware.App",
		Password: "super secret pass",
		FullName: "New Staffer",
		Role:     "staff",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User == nil || resp.User.Email != "new@tailorware.app" {
		t.Fatalf("expected normalized email, got %+v", resp.User)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(repo.created))
	}
	if repo.created[0].Role != enums.UserRoleStaff {
		t.Fatalf("unexpected role %s", repo.created[0].Role)
	}
}
