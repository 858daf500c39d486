package services

import (
	"time"

	"tracker/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceI interface {
	HashPassword(plain string) (string, error)
	VerifyPassword(plain, hashed string) bool
	IssueToken(userID uuid.UUID) (string, error)
	SubjectFromClaims(claims map[string]interface{}) (uuid.UUID, error)
	TokenAuth() *jwtauth.JWTAuth
}

type AuthService struct {
	tokenAuth *jwtauth.JWTAuth
	tokenTTL  time.Duration
}

func NewAuthService(secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil),
		tokenTTL:  tokenTTL,
	}
}

func (s *AuthService) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", utils.InternalServerError("failed to hash password")
	}
	return string(hashed), nil
}

func (s *AuthService) VerifyPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

func (s *AuthService) IssueToken(userID uuid.UUID) (string, error) {
	claims := map[string]interface{}{"sub": userID.String()}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.tokenTTL)

	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return "", utils.Unauthorized("failed to create token")
	}
	return tokenString, nil
}

// SubjectFromClaims extracts the authenticated user id from verified JWT
// claims.
func (s *AuthService) SubjectFromClaims(claims map[string]interface{}) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, utils.Unauthorized("Access denied. Invalid credentials")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, utils.Unauthorized("Access denied. Invalid credentials")
	}
	return userID, nil
}

// TokenAuth exposes the verifier for the router's JWT middleware.
func (s *AuthService) TokenAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}
