package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"envy/internal/domain"
	"envy/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminPIN unlocks the back office. The gate only hides admin screens from casual visitors;
// anyone who can read this source can pass it.
const AdminPIN = "2727"

const adminRole = "admin"

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminGate trades the PIN for a short-lived session token and tracks which sessions are still open.
type AdminGate struct {
	secret  []byte
	pinHash []byte
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]time.Time
}

// NewAdminGate signs sessions with secret. An empty secret gets a random per-process key,
// so sessions do not survive a restart.
func NewAdminGate(secret string, ttl time.Duration) (*AdminGate, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("session secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}
	return &AdminGate{
		secret:   key,
		pinHash:  hash,
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]time.Time{},
	}, nil
}

// Unlock checks pin and opens a session.
func (g *AdminGate) Unlock(pin string) (string, time.Time, error) {
	if bcrypt.CompareHashAndPassword(g.pinHash, []byte(pin)) != nil {
		return "", time.Time{}, domain.ValidationError{Field: "pin", Msg: "incorrect PIN"}
	}

	now := g.now()
	exp := now.Add(g.ttl)
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Msg: "could not sign session", Err: err}
	}

	g.mu.Lock()
	g.pruneLocked(now)
	g.sessions[jti] = exp
	g.mu.Unlock()

	utils.LogEvent("", "admin", "unlock", "session opened")
	return signed, exp, nil
}

// Verify accepts only unexpired, unrevoked admin tokens signed by this gate.
func (g *AdminGate) Verify(token string) error {
	claims, err := g.parse(token, true)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.sessions[claims.ID]; !ok {
		return domain.UnauthorizedError{Msg: "session closed"}
	}
	return nil
}

// Lock closes the session behind token. Locking an already closed session is not an error.
func (g *AdminGate) Lock(token string) error {
	claims, err := g.parse(token, false)
	if err != nil {
		return err
	}
	g.mu.Lock()
	delete(g.sessions, claims.ID)
	g.mu.Unlock()
	utils.LogEvent("", "admin", "lock", "session closed")
	return nil
}

func (g *AdminGate) parse(token string, checkExpiry bool) (*adminClaims, error) {
	if token == "" {
		return nil, domain.UnauthorizedError{Msg: "missing session token"}
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(g.now),
	}
	claims := &adminClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	}, opts...)
	if err != nil && !(errors.Is(err, jwt.ErrTokenExpired) && !checkExpiry) {
		return nil, domain.UnauthorizedError{Msg: "invalid session token", Err: err}
	}
	if claims.Role != adminRole || claims.ID == "" {
		return nil, domain.UnauthorizedError{Msg: "invalid session token"}
	}
	return claims, nil
}

func (g *AdminGate) pruneLocked(now time.Time) {
	for jti, exp := range g.sessions {
		if !exp.After(now) {
			delete(g.sessions, jti)
		}
	}
}
