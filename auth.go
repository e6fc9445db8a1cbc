// auth.go

package main

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	principalAdmin = "admin"
	principalUser  = "user"
)

// authClaims carries the principal id, a role discriminator and the issue
// time. The issue time is what the staleness check compares against
// password_changed_at.
type authClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type"`
	jwt.StandardClaims
}

func (s *server) signToken(claims authClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.JWTSecret)
}

func (s *server) issueAdminToken(adminID, email, username string) (string, error) {
	now := time.Now()
	return s.signToken(authClaims{
		ID:    adminID,
		Email: email,
		Name:  username,
		Type:  principalAdmin,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.cfg.JWTExpiry).Unix(),
		},
	})
}

func (s *server) issueUserToken(userID, email string) (string, error) {
	now := time.Now()
	return s.signToken(authClaims{
		ID:    userID,
		Email: email,
		Type:  principalUser,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.cfg.JWTExpiry).Unix(),
		},
	})
}

func (s *server) parseToken(tokenStr string) (*authClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &authClaims{}, func(t *jwt.Token) (any, error) {
		return s.cfg.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*authClaims)
	if !ok || !token.Valid {
		return nil, jwt.NewValidationError("invalid claims", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}

// tokenStale reports whether the token was signed before the principal's
// last password change. Such tokens verify but must be rejected, forcing a
// re-login after every password change.
func tokenStale(issuedAt int64, passwordChangedAt *time.Time) bool {
	if issuedAt <= 0 || passwordChangedAt == nil {
		return false
	}
	return time.Unix(issuedAt, 0).Before(*passwordChangedAt)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func passwordMatches(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
