package usecase

import (
	"context"
	"errors"
	"net/mail"
	"sort"
	"strings"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRegistration = errors.New("invalid registration input")
	ErrEmailTaken          = errors.New("email already registered")
)

const minPasswordLen = 8

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entities.Role
}

type AuthToken struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      entities.User `json:"user"`
}

// IAuthUseCase manages accounts and bearer tokens.

type IAuthUseCase interface {
	Register(ctx context.Context, actor *entities.Viewer, in RegisterInput) (entities.User, error)
	Login(ctx context.Context, email, password string) (AuthToken, error)
	Me(ctx context.Context, viewer entities.Viewer) (entities.User, error)
	ListWriters(ctx context.Context, viewer entities.Viewer) ([]entities.User, error)
}

type AuthUseCase struct {
	users  interfaces.IUserRepository
	tokens interfaces.ITokenManager
	cost   int
	now    func() time.Time
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(users interfaces.IUserRepository, tokens interfaces.ITokenManager) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account. Anonymous callers can only create clients;
// writer and admin accounts need an admin actor.
func (u *AuthUseCase) Register(ctx context.Context, actor *entities.Viewer, in RegisterInput) (entities.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = entities.RoleClient
	}
	if in.Name == "" || len(in.Password) < minPasswordLen || !in.Role.Valid() {
		return entities.User{}, ErrInvalidRegistration
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return entities.User{}, ErrInvalidRegistration
	}
	if in.Role != entities.RoleClient && (actor == nil || !actor.IsAdmin()) {
		return entities.User{}, ErrForbidden
	}

	existing, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		return entities.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return entities.User{}, err
	}
	user := entities.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    u.now(),
	}
	created, err := u.users.Create(ctx, user)
	if err != nil {
		return entities.User{}, err
	}
	log.Printf("[auth][usecase] user registered user_id=%s role=%s", created.ID, created.Role)
	return created, nil
}

func (u *AuthUseCase) Login(ctx context.Context, email, password string) (AuthToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return AuthToken{}, ErrInvalidCredentials
	}
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthToken{}, err
	}
	if user.ID == "" {
		return AuthToken{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("[auth][usecase] login rejected user_id=%s", user.ID)
		return AuthToken{}, ErrInvalidCredentials
	}

	token, exp, err := u.tokens.Issue(user)
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: token, ExpiresAt: exp, User: user}, nil
}

func (u *AuthUseCase) Me(ctx context.Context, viewer entities.Viewer) (entities.User, error) {
	user, err := u.users.GetByID(ctx, viewer.UserID)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (u *AuthUseCase) ListWriters(ctx context.Context, viewer entities.Viewer) ([]entities.User, error) {
	if !viewer.IsAdmin() {
		return nil, ErrForbidden
	}
	writers, err := u.users.ListByRole(ctx, entities.RoleWriter)
	if err != nil {
		return nil, err
	}
	sort.Slice(writers, func(i, j int) bool { return writers[i].Name < writers[j].Name })
	return writers, nil
}
