package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService emite y valida tokens de sesión de evaluación. Es opcional:
// sin secreto configurado los endpoints funcionan sin token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// AssessmentClaims liga el token a un participant_id concreto.
type AssessmentClaims struct {
	ParticipantID string `json:"pid"`
	DisplayName   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("assessment token invalid")
	ErrTokenExpired = errors.New("assessment token expired")
)

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "persona-fit",
	}
}

// Enabled indica si hay secreto configurado.
func (s *TokenService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Issue firma un token para el participante validado.
func (s *TokenService) Issue(participantID, displayName string) (string, error) {
	if !s.Enabled() {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := AssessmentClaims{
		ParticipantID: participantID,
		DisplayName:   displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify comprueba firma, expiración y que el token pertenezca al
// participant_id del request.
func (s *TokenService) Verify(token, participantID string) error {
	if !s.Enabled() {
		return ErrTokenInvalid
	}
	if strings.TrimSpace(token) == "" {
		return ErrTokenInvalid
	}

	var claims AssessmentClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !parsed.Valid || claims.ParticipantID != participantID {
		return ErrTokenInvalid
	}
	return nil
}
