package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Token types carried in the "type" claim.
const (
	TypeSession = "session"
	TypeStream  = "stream"
)

type Service interface {
	GenerateSessionToken(sessionID string) (token string, expiresAt int64, err error)
	ValidateSessionToken(tokenString string) (sessionID string, err error)
	GenerateStreamToken(sessionID string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (sessionID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
	PurgeRevoked(now time.Time) int
}

type JWTService struct {
	secretKey         string
	sessionExpiration time.Duration
	streamExpiration  time.Duration
	tokenAuth         *jwtauth.JWTAuth
	revokedTokens     map[string]int64
	mu                sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, sessionExpiration, streamExpiration time.Duration) Service {
	return &JWTService{
		secretKey:         secretKey,
		sessionExpiration: sessionExpiration,
		streamExpiration:  streamExpiration,
		tokenAuth:         jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:     make(map[string]int64),
	}
}

// GenerateSessionToken signs a token granting access to one session
func (j *JWTService) GenerateSessionToken(sessionID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.sessionExpiration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"session_id": sessionID,
		"type":       TypeSession,
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ValidateSessionToken(tokenString string) (sessionID string, err error) {
	return j.validate(tokenString, TypeSession)
}

// GenerateStreamToken generates a short-lived token for SSE connections,
// which cannot carry an Authorization header
func (j *JWTService) GenerateStreamToken(sessionID string) (token string, expiresIn int, err error) {
	expiresIn = int(j.streamExpiration.Seconds())
	expiresAt := time.Now().Add(j.streamExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"session_id": sessionID,
		"type":       TypeStream,
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateStreamToken validates a stream token and returns the session ID
func (j *JWTService) ValidateStreamToken(tokenString string) (sessionID string, err error) {
	return j.validate(tokenString, TypeStream)
}

func (j *JWTService) validate(tokenString, wantType string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	// Check token type
	tokenType, ok := token.Get("type")
	if !ok || tokenType != wantType {
		return "", jwt.ErrInvalidJWT()
	}

	sessionIDVal, ok := token.Get("session_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	sessionID, ok := sessionIDVal.(string)
	if !ok || sessionID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	if j.IsTokenRevoked(tokenString) {
		return "", jwtauth.ErrUnauthorized
	}

	return sessionID, nil
}

// RevokeToken blacklists token until expiresAt
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// PurgeRevoked forgets revoked tokens that have expired anyway
func (j *JWTService) PurgeRevoked(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	purged := 0
	for token, expiresAt := range j.revokedTokens {
		if expiresAt <= now.Unix() {
			delete(j.revokedTokens, token)
			purged++
		}
	}
	return purged
}
