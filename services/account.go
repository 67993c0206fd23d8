package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"FoodOrder/audit"
	"FoodOrder/config"
	"FoodOrder/jwt"
	"FoodOrder/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

type RegisterInput struct {
	Username string
	Email    string
	Address  string
	Password string
}

// Session is what a successful login or registration hands back.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

type AccountService struct {
	db     *gorm.DB
	issuer *jwt.Issuer
	audit  audit.Recorder
	log    *zap.Logger
}

func NewAccountService(db *gorm.DB, issuer *jwt.Issuer, rec audit.Recorder, log *zap.Logger) *AccountService {
	return &AccountService{db: db, issuer: issuer, audit: rec, log: log.Named("account")}
}

func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword wants 8 to 72 bytes (bcrypt's limit), at least one
// letter and one digit, and no whitespace.
func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 72 {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func (in RegisterInput) validate() error {
	switch {
	case !ValidateUsername(in.Username):
		return validationf("username must be 3-64 letters, digits, '.', '_' or '-'")
	case !ValidateEmail(in.Email):
		return validationf("email is invalid")
	case !ValidatePassword(in.Password):
		return validationf("password must be 8-72 characters with a letter and a digit")
	}
	return nil
}

// Register creates a Customer account and logs it in.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	user, err := s.register(ctx, in, models.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, *user)
}

// RegisterAdmin creates an Admin account on behalf of an existing admin.
func (s *AccountService) RegisterAdmin(ctx context.Context, actorID uint, in RegisterInput) (*Session, error) {
	user, err := s.register(ctx, in, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.log, audit.Entry{
		Action:   audit.ActionRegisterAdmin,
		Entity:   audit.EntityUser,
		EntityID: user.ID,
		ActorID:  actorID,
		Data:     map[string]interface{}{"username": user.Username},
	})

	return s.issueSession(ctx, *user)
}

func (s *AccountService) register(ctx context.Context, in RegisterInput, role string) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := in.validate(); err != nil {
		return nil, err
	}

	exists, err := s.usernameExists(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username already exists", ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		Address:      in.Address,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// the unique index catches a concurrent registration of the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username already exists", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.Uint("userID", user.ID), zap.String("role", role))
	return &user, nil
}

func (s *AccountService) usernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).
		Error
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return count > 0, nil
}

// Login checks the credentials of an active user and issues a token.
func (s *AccountService) Login(ctx context.Context, username, password string) (*Session, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Scopes(models.NotDeleted).
		Where("username = ?", strings.TrimSpace(username)).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}

	return s.issueSession(ctx, user)
}

func (s *AccountService) issueSession(ctx context.Context, user models.User) (*Session, error) {
	token, expiresAt, err := s.issuer.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	loginToken := models.LoginToken{
		Token:          token,
		ExpirationTime: expiresAt,
		UserID:         user.ID,
		Role:           user.Role,
	}
	if err := s.db.WithContext(ctx).Create(&loginToken).Error; err != nil {
		return nil, fmt.Errorf("store login token: %w", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate verifies a bearer token and checks that it has not been
// revoked by a logout.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.issuer.ParseToken(token)
	if err != nil {
		return nil, err
	}

	var count int64
	err = s.db.WithContext(ctx).
		Model(&models.LoginToken{}).
		Where("token = ? AND user_id = ?", token, claims.UserID).
		Count(&count).
		Error
	if err != nil {
		return nil, fmt.Errorf("check login token: %w", err)
	}
	if count == 0 {
		return nil, jwt.ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes the token. ErrNotFound when it was already revoked.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	result := s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.LoginToken{})
	if result.Error != nil {
		return fmt.Errorf("delete login token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundf("token already logged out")
	}
	return nil
}

// PurgeExpiredTokens drops login tokens past their expiry.
func (s *AccountService) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expiration_time < ?", now).Delete(&models.LoginToken{})
	return result.RowsAffected, result.Error
}

func (s *AccountService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Scopes(models.NotDeleted).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("user %d not found", id)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// SeedAdmin creates the configured admin once. It does nothing when the
// username or password is not configured or the user already exists.
func (s *AccountService) SeedAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		s.log.Info("skip seeding admin: username or password not configured")
		return nil
	}

	exists, err := s.usernameExists(ctx, cfg.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := models.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("admin seeded", zap.String("username", admin.Username))
	return nil
}
