package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/jawafdehi/jawaf/internal/domain"
)

// AuthService resolves bearer tokens into actors. Token issuance lives in
// the surrounding system; this side only verifies and maps claims.
type AuthService struct {
	secret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

// ActorClaims is the claim set this core understands.
type ActorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ResolveActor verifies the token and returns the actor it names.
func (s *AuthService) ResolveActor(token string) (*domain.Actor, error) {
	var claims ActorClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "token verification failed")
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return nil, errors.Errorf("unknown role claim: %q", claims.Role)
	}

	return &domain.Actor{ID: claims.Subject, Role: role}, nil
}
