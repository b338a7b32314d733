package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-water-storefront/internal/domains/session/ports"
)

// DefaultNamespace scopes entries when several devices share one database.
const DefaultNamespace = "default"

// Store persists session entries in PostgreSQL, one row per namespace and key.
type Store struct {
	db        *gorm.DB
	namespace string
	ttl       time.Duration
	now       func() time.Time
}

// NewStore wires a PostgreSQL-backed store. A zero ttl keeps entries until deleted. Caller owns DB lifecycle.
func NewStore(db *gorm.DB, namespace string, ttl time.Duration) *Store {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Store{db: db, namespace: namespace, ttl: ttl, now: time.Now}
}

type entryRecord struct {
	Namespace string     `gorm:"primaryKey;column:namespace;size:128"`
	Key       string     `gorm:"primaryKey;column:key;size:128"`
	Value     string     `gorm:"column:value;type:text"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (entryRecord) TableName() string { return "storefront_kv" }

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.ensureDB(); err != nil {
		return "", false, err
	}
	var rec entryRecord
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.namespace, key).
		Where("expires_at IS NULL OR expires_at > ?", s.now()).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ports.ErrStoreUnavailable, err)
	}
	return rec.Value, true, nil
}

// Set upserts the entry and refreshes its expiry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	rec := entryRecord{Namespace: s.namespace, Key: key, Value: value}
	if s.ttl > 0 {
		expiry := s.now().Add(s.ttl)
		rec.ExpiresAt = &expiry
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.namespace, key).
		Delete(&entryRecord{}).Error
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrStoreUnavailable, err)
	}
	return nil
}

// PurgeExpired removes expired entries across all namespaces and reports how many went.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	res := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).
		Delete(&entryRecord{})
	return res.RowsAffected, res.Error
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ ports.Store = (*Store)(nil)
