package migrations

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema used by the PostgreSQL session store.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return err
	}
	return db.Exec(fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s (expires_at) WHERE expires_at IS NOT NULL",
		pq.QuoteIdentifier("idx_storefront_kv_expires_at"),
		pq.QuoteIdentifier(kvRecord{}.TableName()),
	)).Error
}

// kvRecord mirrors the session store's entry row.
type kvRecord struct {
	Namespace string     `gorm:"primaryKey;column:namespace;size:128"`
	Key       string     `gorm:"primaryKey;column:key;size:128"`
	Value     string     `gorm:"column:value;type:text"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (kvRecord) TableName() string { return "storefront_kv" }
