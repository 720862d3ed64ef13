package application

import (
	"context"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/api/internal/domain/entity"
	"github.com/devconnect/api/internal/domain/repository"
	"github.com/devconnect/api/pkg/helpers"
	"github.com/devconnect/api/pkg/mailer"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService orchestrates registration, login, and identity verification.
// It holds no state of its own; every operation re-reads the directory.
// Pub and ES are optional best-effort collaborators.
type AuthService struct {
	Repo         repository.UserRepository
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	MailEnabled  bool
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esUsersIndex string, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:         repo,
		JWT:          jwt,
		Logger:       logger,
		Pub:          pub,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		MailEnabled:  mailEnabled,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult pairs the sanitized account with its bearer token.
type AuthResult struct {
	User      *UserProfile
	Token     string
	ExpiresAt time.Time
}

// Register creates an account and issues its first token. The duplicate
// check here is advisory; the directory's unique constraint arbitrates
// concurrent registrations, so a conflict from Create maps to the same
// ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	u, err := s.Repo.Create(ctx, repository.CreateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     entity.ParseRole(in.Role),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(ctx, u)
	indexUser(ctx, s.ES, s.ESUsersIndex, s.Logger, u)

	return &AuthResult{User: NewUserProfile(u), Token: token, ExpiresAt: exp}, nil
}

// Login validates credentials and issues a token. A missing account and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	// Presence is advisory; a failed write is logged and login proceeds.
	if err := s.Repo.UpdateStatus(ctx, u.ID, entity.StatusOnline); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("status update failed")
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: NewUserProfile(u), Token: token, ExpiresAt: exp}, nil
}

// Verify re-fetches the account behind an already-verified token. Tokens
// outlive account deletion, so the account may be gone.
func (s *AuthService) Verify(ctx context.Context, userID string) (*UserProfile, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return NewUserProfile(u), nil
}

func (s *AuthService) sendWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.WelcomeEmail(u.Email, u.Name)
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}
