package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"sentra-identity-svc/src/internal/validation"
)

// Claims represents the verified contents of a bearer credential.
type Claims struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	TenantID  string `json:"tenantId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

var (
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token")
)

// Verifier validates a signed credential string and returns its claims.
type Verifier interface {
	Verify(credential string) (*Claims, error)
}

type jwtVerifier struct {
	secret string
}

// NewJWTVerifier returns a Verifier backed by HMAC-signed JWTs.
func NewJWTVerifier(secret string) Verifier {
	return &jwtVerifier{secret: secret}
}

func (v *jwtVerifier) Verify(credential string) (*Claims, error) {
	// Structural check first so garbage never reaches the parser.
	if !validation.IsBearerCredential(credential) {
		return nil, ErrTokenMalformed
	}

	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(v.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	if claims.TokenType != "access" {
		return nil, ErrTokenInvalid
	}

	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
