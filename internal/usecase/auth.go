package usecase

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL = 12 * time.Hour
	adminSubject    = "admin"
	tokenIssuer     = "seerah-hajj"
)

// AdminAuth troca a senha do painel por um JWT HS256.
// Sem senha nem hash configurados, o painel fica aberto (modo legado).
type AdminAuth struct {
	PasswordHash string
	Password     string
	Secret       []byte
	Method       jwt.SigningMethod
	TTL          time.Duration
	Now          func() time.Time
}

type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewAdminAuth(passwordHash, password, secret string, ttl time.Duration) *AdminAuth {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AdminAuth{
		PasswordHash: passwordHash,
		Password:     password,
		Secret:       []byte(secret),
		Method:       jwt.SigningMethodHS256,
		TTL:          ttl,
		Now:          time.Now,
	}
}

func (a *AdminAuth) Enabled() bool {
	return a.PasswordHash != "" || a.Password != ""
}

func (a *AdminAuth) Login(password string) (*LoginOutput, error) {
	if !a.Enabled() {
		return nil, domainErr(CodeBadRequest, "Admin login is not configured")
	}
	if !a.checkPassword(password) {
		return nil, domainErr(CodeUnauthorized, "Invalid password")
	}

	now := a.Now()
	exp := now.Add(a.TTL)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(a.Method, claims).SignedString(a.Secret)
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "failed to sign token", Err: err}
	}
	return &LoginOutput{Token: signed, ExpiresAt: exp}, nil
}

// Verify valida assinatura, algoritmo, emissor e validade.
func (a *AdminAuth) Verify(token string) error {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.Secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(a.Now))
	if err != nil {
		return domainErr(CodeUnauthorized, "Invalid or expired token")
	}
	if !parsed.Valid || claims.Subject != adminSubject {
		return domainErr(CodeUnauthorized, "Invalid or expired token")
	}
	return nil
}

func (a *AdminAuth) checkPassword(password string) bool {
	if a.PasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
		return err == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) == 1
}
