package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store keeps sessions in Redis keyed by a random session ID. Clients
// carry a signed token wrapping that ID, so a forged cookie cannot name
// an arbitrary session.
type Store struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

type StoreConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Secret       string
	TTL          time.Duration
}

func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		Addr:         "localhost:6379",
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		Secret:       "your-secret-key",
		TTL:          24 * time.Hour,
	}
}

func NewStore(config *StoreConfig) *Store {
	if config == nil {
		config = DefaultStoreConfig()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	return &Store{
		client: rdb,
		secret: []byte(config.Secret),
		ttl:    config.TTL,
	}
}

// Create opens a session for the user and returns the signed token the
// client should carry.
func (s *Store) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.Must(uuid.NewV4()).String()

	if err := s.client.Set(ctx, keyPrefix+sessionID, userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Resolve turns a client token back into a Session. Any failure along
// the way (bad signature, expired token, evicted session) resolves to
// ErrNotLoggedIn rather than leaking the cause to the caller.
func (s *Store) Resolve(ctx context.Context, token string) (Session, error) {
	sessionID, err := s.parseSessionID(token)
	if err != nil {
		return Anonymous(), ErrNotLoggedIn
	}

	value, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return Anonymous(), ErrNotLoggedIn
	}
	if err != nil {
		return Anonymous(), fmt.Errorf("failed to load session: %w", err)
	}

	userID, err := uuid.FromString(value)
	if err != nil {
		return Anonymous(), ErrNotLoggedIn
	}
	return ForUser(userID), nil
}

// Destroy removes the session named by the token. Unparseable tokens
// are a no-op; there is nothing to remove.
func (s *Store) Destroy(ctx context.Context, token string) error {
	sessionID, err := s.parseSessionID(token)
	if err != nil {
		return nil
	}
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}

func (s *Store) parseSessionID(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrNotLoggedIn
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNotLoggedIn
	}
	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", ErrNotLoggedIn
	}
	return sessionID, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
