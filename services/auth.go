package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"cafe-site/models"
	"cafe-site/storage"

	"github.com/google/uuid"
)

// Result codes of AuthResult.
const (
	AuthOK               = "ok"
	AuthMissingField     = "missing_field"
	AuthInvalidEmail     = "invalid_email"
	AuthWeakPassword     = "weak_password"
	AuthPasswordMismatch = "password_mismatch"
	AuthTermsNotAccepted = "terms_not_accepted"
	AuthDuplicateEmail   = "duplicate_email"
	AuthUserNotFound     = "user_not_found"
	AuthWrongPassword    = "wrong_password"
	AuthInactive         = "inactive"
	AuthThrottled        = "throttled"
)

const (
	DefaultSessionTTL     = 7 * 24 * time.Hour
	throttleRetentionTime = 24 * time.Hour
)

var ErrUnauthenticated = errors.New("not authenticated")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

type RegisterInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// AuthResult is returned for every register/login attempt. Expected
// failures are reported here, not as errors.
type AuthResult struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	User    *models.User    `json:"user,omitempty"`
	Session *models.Session `json:"session,omitempty"`
}

func fail(code, msg string) AuthResult {
	return AuthResult{Code: code, Message: msg}
}

type AuthService struct {
	users    storage.UserRepository
	sessions storage.SessionRepository
	throttle *LoginThrottle
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(users storage.UserRepository, sessions storage.SessionRepository, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		throttle: NewLoginThrottle(),
		ttl:      ttl,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the form and appends a new active user. The error is
// non-nil only when storage fails.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := normalizeEmail(in.Email)

	if firstName == "" {
		return fail(AuthMissingField, "El nombre es requerido"), nil
	}
	if lastName == "" {
		return fail(AuthMissingField, "El apellido es requerido"), nil
	}
	if !ValidateEmail(email) {
		return fail(AuthInvalidEmail, "El formato del email no es válido"), nil
	}
	if check := ValidatePassword(in.Password); !check.IsValid {
		return fail(AuthWeakPassword, check.Message), nil
	}
	if in.Password != in.ConfirmPassword {
		return fail(AuthPasswordMismatch, "Las contraseñas no coinciden"), nil
	}
	if !in.AcceptTerms {
		return fail(AuthTermsNotAccepted, "Debes aceptar los términos y condiciones"), nil
	}

	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return fail(AuthDuplicateEmail, "Ya existe una cuenta con este email"), nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return fail(AuthDuplicateEmail, "Ya existe una cuenta con este email"), nil
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}
	return AuthResult{Success: true, Code: AuthOK, Message: "¡Cuenta creada exitosamente!", User: u}, nil
}

// throttleKey scopes failed attempts to one account as tried from one client,
// so a stranger's guesses cannot lock the owner out.
func throttleKey(email, client string) string {
	return email + "|" + client
}

// Login checks the credentials, stamps lastLogin on the matching user only
// and opens a session. client identifies the caller (remote IP, chat id) for
// the throttle.
func (s *AuthService) Login(ctx context.Context, email, password, client string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return fail(AuthMissingField, "El correo electrónico es requerido"), nil
	}
	if !ValidateEmail(email) {
		return fail(AuthInvalidEmail, "El formato del email no es válido"), nil
	}
	if strings.TrimSpace(password) == "" {
		return fail(AuthMissingField, "La contraseña es requerida"), nil
	}
	key := throttleKey(email, client)
	if wait := s.throttle.WaitSeconds(key); wait > 0 {
		return fail(AuthThrottled, fmt.Sprintf("Demasiados intentos. Intenta de nuevo en %d segundos", wait)), nil
	}

	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.throttle.RecordFailed(key)
			return fail(AuthUserNotFound, "No existe una cuenta con este email"), nil
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !CheckPassword(u.PasswordHash, password) {
		s.throttle.RecordFailed(key)
		return fail(AuthWrongPassword, "Contraseña incorrecta"), nil
	}
	if !u.IsActive {
		return fail(AuthInactive, "La cuenta está desactivada"), nil
	}
	s.throttle.RecordSuccess(key)

	now := s.now()
	u.LastLogin = &now
	if err := s.users.Update(ctx, u); err != nil {
		return AuthResult{}, fmt.Errorf("update last login: %w", err)
	}
	sess := &models.Session{
		Handle:    uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return AuthResult{}, fmt.Errorf("create session: %w", err)
	}
	return AuthResult{
		Success: true,
		Code:    AuthOK,
		Message: fmt.Sprintf("¡Bienvenido de vuelta, %s!", u.FirstName),
		User:    u,
		Session: sess,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	return s.sessions.Delete(ctx, handle)
}

// CurrentUser resolves a session handle to its active user.
func (s *AuthService) CurrentUser(ctx context.Context, handle string) (*models.User, error) {
	if handle == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := s.sessions.Get(ctx, handle)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if sess.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, handle); err != nil {
			log.Printf("auth: delete expired session: %v", err)
		}
		return nil, ErrUnauthenticated
	}
	u, err := s.users.ByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrUnauthenticated
	}
	return u, nil
}

// CreateUser registers an account with a generated password and returns
// that password once.
func (s *AuthService) CreateUser(ctx context.Context, firstName, lastName, email string) (AuthResult, string, error) {
	password, err := GenerateSecurePassword()
	if err != nil {
		return AuthResult{}, "", err
	}
	res, err := s.Register(ctx, RegisterInput{
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		AcceptTerms:     true,
	})
	if err != nil || !res.Success {
		return res, "", err
	}
	return res, password, nil
}

// SetActive enables or disables an account.
func (s *AuthService) SetActive(ctx context.Context, email string, active bool) error {
	u, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	u.IsActive = active
	return s.users.Update(ctx, u)
}

// Sweep removes expired sessions and stale throttle entries.
func (s *AuthService) Sweep(ctx context.Context) (int64, error) {
	s.throttle.Cleanup(throttleRetentionTime)
	return s.sessions.DeleteExpired(ctx, s.now())
}
