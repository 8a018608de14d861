// Package auth covers customer registration, login sessions and token
// verification for the storefront and the back office.
package auth

import (
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/pkg/common"
)

const (
	SessionTTL     = 7 * 24 * time.Hour
	tokenLength    = 48
	minPasswordLen = 8
)

var (
	ErrBadEmail       = errors.New("invalid email address")
	ErrBadPhone       = errors.New("invalid phone number")
	ErrWeakPassword   = errors.New("password must be at least 8 characters with a letter and a digit")
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	ErrDuplicatePhone = errors.New("an account with this phone number already exists")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrSessionExpired = errors.New("session expired or revoked")
)

// CheckPasswordPolicy enforces the minimum strength rules
func CheckPasswordPolicy(password string) error {
	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash against a candidate password
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Claims is the JWT payload for customer and admin tokens
type Claims struct {
	CustomerId int64  `json:"cid,string"`
	Level      string `json:"level"`
	jwt.RegisteredClaims
}

// MintToken signs a JWT for the customer, expiring with the session
func MintToken(c *domain.Customer, secret string, now time.Time) (string, error) {
	claims := Claims{
		CustomerId: c.ID,
		Level:      c.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the claims
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Service runs the session row lifecycle against the store
type Service struct {
	db     *gorm.DB
	secret string
}

func NewService(db *gorm.DB, secret string) *Service {
	return &Service{db: db, secret: secret}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates a customer account. Duplicate email comparison is
// case-insensitive.
func (s *Service) Register(req *RegisterRequest) (*domain.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !common.IsEmailValid(email) {
		return nil, ErrBadEmail
	}
	if req.Phone != "" && !common.IsPhoneValid(req.Phone) {
		return nil, ErrBadPhone
	}
	if err := CheckPasswordPolicy(req.Password); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&domain.Customer{}).Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "check duplicate email")
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	phone := strings.TrimSpace(req.Phone)
	if phone != "" {
		if err := s.db.Model(&domain.Customer{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
			return nil, errors.Wrap(err, "check duplicate phone")
		}
		if count > 0 {
			return nil, ErrDuplicatePhone
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	c := &domain.Customer{
		ID:        common.UUIDint64(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Password:  hash,
		Level:     "customer",
		Status:    common.ENABLED,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.db.Create(c).Error; err != nil {
		return nil, errors.Wrap(err, "create customer")
	}
	return c, nil
}

// LoginResult carries the bearer token and its session expiry
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Customer  *domain.Customer `json:"customer"`
}

// Login verifies credentials and records a session row. The raw token is
// returned to the caller once; only its sha256 is stored.
func (s *Service) Login(email, password, userAgent, ip string) (*LoginResult, error) {
	var c domain.Customer
	err := s.db.Where("LOWER(email) = ? AND status = ?",
		strings.ToLower(strings.TrimSpace(email)), common.ENABLED).First(&c).Error
	if err != nil {
		return nil, ErrBadCredentials
	}
	if c.Password == "" || !VerifyPassword(c.Password, password) {
		return nil, ErrBadCredentials
	}

	now := time.Now()
	jwtToken, err := MintToken(&c, s.secret, now)
	if err != nil {
		return nil, errors.Wrap(err, "mint token")
	}
	// The session binds to the JWT plus a random component so two logins in
	// the same second still produce distinct tokens.
	token := jwtToken + "." + random.String(tokenLength)

	sess := &domain.CustomerSession{
		ID:         common.UUIDint64(),
		CustomerId: c.ID,
		TokenHash:  common.Sha256Hash(token),
		UserAgent:  userAgent,
		Ipaddr:     ip,
		LastSeenAt: now,
		ExpiresAt:  now.Add(SessionTTL),
		CreatedAt:  now,
	}
	if err := s.db.Create(sess).Error; err != nil {
		return nil, errors.Wrap(err, "create session")
	}

	s.db.Model(&domain.Customer{}).Where("id = ?", c.ID).Update("last_login", now)

	return &LoginResult{Token: token, ExpiresAt: sess.ExpiresAt, Customer: &c}, nil
}

// Verify checks both the JWT and the unexpired session row and slides
// last_seen_at forward.
func (s *Service) Verify(token string) (*domain.Customer, error) {
	jwtPart := token
	if idx := strings.LastIndex(token, "."); idx > 0 {
		jwtPart = token[:idx]
	}
	if _, err := ParseToken(jwtPart, s.secret); err != nil {
		return nil, ErrSessionExpired
	}

	var sess domain.CustomerSession
	err := s.db.Where("token_hash = ? AND expires_at > ?",
		common.Sha256Hash(token), time.Now()).First(&sess).Error
	if err != nil {
		return nil, ErrSessionExpired
	}

	s.db.Model(&domain.CustomerSession{}).Where("id = ?", sess.ID).
		Update("last_seen_at", time.Now())

	var c domain.Customer
	if err := s.db.Where("id = ?", sess.CustomerId).First(&c).Error; err != nil {
		return nil, ErrSessionExpired
	}
	return &c, nil
}

// Logout deletes the matching session row. Deliberately fail-open: errors
// are logged and swallowed so the caller can always report success.
func (s *Service) Logout(token string) {
	err := s.db.Where("token_hash = ?", common.Sha256Hash(token)).
		Delete(&domain.CustomerSession{}).Error
	if err != nil {
		zap.L().Warn("logout session delete failed", zap.Error(err))
	}
}

// PurgeExpiredSessions removes session rows past their expiry
func (s *Service) PurgeExpiredSessions() {
	res := s.db.Where("expires_at < ?", time.Now()).Delete(&domain.CustomerSession{})
	if res.Error != nil {
		zap.L().Error("purge expired sessions failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		zap.L().Info("purged expired sessions", zap.Int64("count", res.RowsAffected))
	}
}
