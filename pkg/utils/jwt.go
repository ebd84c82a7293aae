package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionToken is a signed HS256 credential carried in the auth cookie.
// The jti claim identifies the session; every login mints a fresh one.
type SessionToken struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// NewSessionToken signs a credential for the given user with a fixed
// lifetime. There is no sliding renewal: the expiry set here is final.
func NewSessionToken(secret string, userID uuid.UUID, name, email, role string, expiryDays int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(expiryDays) * 24 * time.Hour)
	jti := uuid.New().String()

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"name":  name,
		"email": email,
		"role":  role,
		"jti":   jti,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}

	return SessionToken{Token: signed, SessionID: jti, ExpiresAt: exp}, nil
}

// VerifySessionToken checks the signature and expiry of a credential and
// returns the identity it carries. Any failure (bad signature, expired,
// malformed claims) is returned as an error; callers treat all of them
// as an unauthenticated request.
func VerifySessionToken(secret, token string) (*Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, fmt.Errorf("missing jti claim")
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return &Identity{
		UserID:    userID,
		Name:      name,
		Email:     email,
		Role:      role,
		SessionID: jti,
		ExpiresAt: expiresAt,
	}, nil
}
