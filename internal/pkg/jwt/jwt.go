package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/dopust-hr/leave-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

var ErrInvalidClaims = errors.New("invalid token claims")

// Claims is the typed view of an access token.
type Claims struct {
	UserID    int64
	Email     string
	FirstName string
	LastName  string
	UserType  user.Type
	TokenID   string
	ExpiresAt time.Time
}

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (*JWTService, error) {
	expDuration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("parse access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpiration: expDuration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":    u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"user_type":  int(u.Type),
		"type":       tokenTypeAccess,
		"jti":        uuid.NewString(),
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ClaimsFromToken extracts access-token claims from a verified token.
func ClaimsFromToken(token jwt.Token) (Claims, error) {
	if token == nil {
		return Claims{}, ErrInvalidClaims
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != tokenTypeAccess {
		return Claims{}, fmt.Errorf("%w: not an access token", ErrInvalidClaims)
	}

	userIDVal, _ := token.Get("user_id")
	userID, ok := toInt64(userIDVal)
	if !ok || userID <= 0 {
		return Claims{}, fmt.Errorf("%w: user_id", ErrInvalidClaims)
	}

	userTypeVal, _ := token.Get("user_type")
	userType, ok := toInt64(userTypeVal)
	if !ok {
		return Claims{}, fmt.Errorf("%w: user_type", ErrInvalidClaims)
	}

	claims := Claims{
		UserID:    userID,
		UserType:  user.Type(userType),
		TokenID:   token.JwtID(),
		ExpiresAt: token.Expiration(),
	}
	claims.Email = stringClaim(token, "email")
	claims.FirstName = stringClaim(token, "first_name")
	claims.LastName = stringClaim(token, "last_name")

	return claims, nil
}

func stringClaim(token jwt.Token, name string) string {
	v, ok := token.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// JSON numbers decode as float64; freshly encoded tokens still hold Go ints.
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), n == float64(int64(n))
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int16:
		return int64(n), true
	default:
		return 0, false
	}
}
