package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/communitydesk/bulletin-board/internal/domain/entity"
	repo "github.com/communitydesk/bulletin-board/internal/domain/repository"
	"github.com/communitydesk/bulletin-board/pkg/helpers"
	"github.com/communitydesk/bulletin-board/pkg/mailer"
)

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike, so callers cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
)

// dummyHash keeps Verify doing one bcrypt comparison even when the email
// is unknown, so the two failure paths take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// IdentityService owns user creation and credential verification.
type IdentityService struct {
	Users      repo.UserRepository
	Sessions   SessionStore
	Logger     *logrus.Logger
	BcryptCost int
	Pub        *helpers.RabbitPublisher // optional; welcome mail is best effort
}

func NewIdentityService(users repo.UserRepository, sessions SessionStore, logger *logrus.Logger, bcryptCost int, pub *helpers.RabbitPublisher) *IdentityService {
	return &IdentityService{Users: users, Sessions: sessions, Logger: logger, BcryptCost: bcryptCost, Pub: pub}
}

// RegisterLocal creates an email/password account. The unique constraint
// on email is authoritative; a duplicate insert comes back as
// repository.ErrEmailTaken no matter how the check-then-insert race falls.
func (s *IdentityService) RegisterLocal(ctx context.Context, name, email, password string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.sendWelcome(ctx, u)
	return u, nil
}

// UpsertIdentity records a provider identity on first sight and returns
// the stored row unchanged on every later login (no profile sync).
func (s *IdentityService) UpsertIdentity(ctx context.Context, externalID, name, email string) (*entity.User, error) {
	if strings.TrimSpace(externalID) == "" || strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, ErrMissingFields
	}
	u, err := s.Users.Upsert(ctx, &entity.User{ID: externalID, Name: name, Email: email})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Verify checks email/password and returns the minimal identity
// projection, never the hash.
func (s *IdentityService) Verify(ctx context.Context, email, password string) (*Identity, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		helpers.CompareHashAndPassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if u.PasswordHash == "" {
		// OAuth-derived account; it has no local credentials.
		helpers.CompareHashAndPassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &Identity{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// Login verifies credentials and establishes a session, returning the
// identity and the opaque token.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*Identity, string, error) {
	id, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.Sessions.Create(ctx, *id)
	if err != nil {
		return nil, "", err
	}
	return id, token, nil
}

// EstablishSession creates a session for an already-authenticated user
// (OAuth callback, fresh registration).
func (s *IdentityService) EstablishSession(ctx context.Context, u *entity.User) (string, error) {
	return s.Sessions.Create(ctx, Identity{ID: u.ID, Name: u.Name, Email: u.Email})
}

// Logout destroys the session; unknown tokens are a no-op.
func (s *IdentityService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Destroy(ctx, token)
}

func (s *IdentityService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Subject:  "Welcome to the community board",
		Text:     "Hi " + u.Name + ", your account is ready. Post your first event any time.",
		Template: "welcome",
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome mail enqueue failed")
	}
}
