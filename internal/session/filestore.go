package session

import (
	"fmt"
	"os"

	"oficina-desk/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// fileStore persists the identity across restarts as an HMAC-signed token
// so a hand-edited session file cannot grant a different role.
type fileStore struct {
	path   string
	secret []byte
}

func newFileStore(path, secret string) *fileStore {
	return &fileStore{path: path, secret: []byte(secret)}
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int    `json:"id_usuario"`
	jwt.RegisteredClaims
}

func (s *fileStore) save(id Identity) error {
	if len(s.secret) == 0 {
		// No signing secret, nothing worth persisting.
		return nil
	}
	claims := sessionClaims{
		Username: id.Username,
		Role:     string(id.Role),
		UserID:   id.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "oficina-desk",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *fileStore) load() (*Identity, error) {
	if len(s.secret) == 0 {
		return nil, nil
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(string(data), &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	return &Identity{
		Username: claims.Username,
		Role:     models.Role(claims.Role),
		UserID:   claims.UserID,
	}, nil
}

func (s *fileStore) clear() {
	os.Remove(s.path)
}
