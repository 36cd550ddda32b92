// internal/domain/cart/repository.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCartNotFound is returned by Load when a session has no stored cart
var ErrCartNotFound = errors.New("cart not found")

// Repository persists carts per session
type Repository interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryRepository keeps encoded carts in process memory
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]byte
	now   func() time.Time
}

// NewMemoryRepository creates an in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string][]byte), now: time.Now}
}

// Load restores the cart of sessionID
func (r *MemoryRepository) Load(_ context.Context, sessionID string) (*Cart, error) {
	r.mu.RLock()
	data, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrCartNotFound
	}
	return Decode(data)
}

// Save stores the cart of sessionID
func (r *MemoryRepository) Save(_ context.Context, sessionID string, c *Cart) error {
	data, err := Encode(c, r.now())
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.carts[sessionID] = data
	r.mu.Unlock()
	return nil
}

// Delete removes the cart of sessionID
func (r *MemoryRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
	return nil
}

// RedisRepository stores carts as JSON strings with a sliding TTL
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisRepository creates a Redis backed repository
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl, now: time.Now}
}

func redisKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Load restores the cart of sessionID
func (r *RedisRepository) Load(ctx context.Context, sessionID string) (*Cart, error) {
	data, err := r.client.Get(ctx, redisKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart from redis: %w", err)
	}
	return Decode(data)
}

// Save stores the cart of sessionID and refreshes its TTL
func (r *RedisRepository) Save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := Encode(c, r.now())
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart to redis: %w", err)
	}
	return nil
}

// Delete removes the cart of sessionID
func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart from redis: %w", err)
	}
	return nil
}

// CartSnapshot is the table row holding one session's cart
type CartSnapshot struct {
	SessionID string    `gorm:"primaryKey;size:128" json:"session_id"`
	Payload   []byte    `gorm:"type:jsonb;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for CartSnapshot
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}

// PostgresRepository stores carts in the cart_snapshots table
type PostgresRepository struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresRepository creates a gorm backed repository
func NewPostgresRepository(db *gorm.DB, ttl time.Duration) *PostgresRepository {
	return &PostgresRepository{db: db, ttl: ttl, now: time.Now}
}

// Load restores the cart of sessionID, ignoring expired rows
func (r *PostgresRepository) Load(ctx context.Context, sessionID string) (*Cart, error) {
	var row CartSnapshot
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND expires_at > ?", sessionID, r.now()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	return Decode(row.Payload)
}

// Save upserts the cart of sessionID
func (r *PostgresRepository) Save(ctx context.Context, sessionID string, c *Cart) error {
	now := r.now()
	data, err := Encode(c, now)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	row := CartSnapshot{
		SessionID: sessionID,
		Payload:   data,
		ExpiresAt: now.Add(r.ttl),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// Delete removes the cart of sessionID
func (r *PostgresRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&CartSnapshot{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

// PurgeExpired deletes snapshots past their expiry and returns how many went
func (r *PostgresRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", r.now()).Delete(&CartSnapshot{})
	return result.RowsAffected, result.Error
}
