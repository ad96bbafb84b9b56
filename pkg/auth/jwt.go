package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jwalitptl/healthapp-api/internal/model"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

const issuer = "healthapp-api"

// Claims carries the caller identity inside an access token.
type Claims struct {
	Role model.Role `json:"role"`
	ID   int64      `json:"id"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateAccessToken(role model.Role, id int64) (string, time.Time, error)
	ValidateToken(token string) (model.Actor, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (s *jwtService) GenerateAccessToken(role model.Role, id int64) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiry)
	claims := Claims{
		Role: role,
		ID:   id,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%s:%s", role, strconv.FormatInt(id, 10)),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken returns ErrTokenExpired for an expired token and ErrInvalidToken for anything else it rejects.
func (s *jwtService) ValidateToken(token string) (model.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Actor{}, apperrors.TokenExpired(err)
		}
		return model.Actor{}, apperrors.InvalidToken(err)
	}

	// The admin account has no row and is issued id 0.
	if !claims.Role.Valid() || claims.ID < 0 || (claims.ID == 0 && claims.Role != model.RoleAdmin) {
		return model.Actor{}, apperrors.InvalidToken(fmt.Errorf("malformed identity claims"))
	}
	return model.Actor{Role: claims.Role, ID: claims.ID}, nil
}
