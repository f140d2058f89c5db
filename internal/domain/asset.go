package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetMetadata is an open attribute bag attached to an asset record.
// For imported brokerage positions it carries symbol, price_per_share,
// quantity, currency, asset_type, source and account_id.
type AssetMetadata map[string]interface{}

// Value implements driver.Valuer so the metadata bag can be stored as JSONB.
func (m AssetMetadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for reading the JSONB column back.
func (m *AssetMetadata) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into AssetMetadata", src)
	}
	return json.Unmarshal(b, m)
}

// Asset represents a persisted user-owned financial record.
// A liability and an asset share the same record shape, discriminated
// only by IsLiability. Assets are created (manually, by import, or by
// search-and-select) and deleted; there is no edit path.
type Asset struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	UserID           uuid.UUID       `db:"user_id" json:"user_id"`
	Name             string          `db:"name" json:"name"`
	Value            decimal.Decimal `db:"value" json:"value"`
	Description      string          `db:"description" json:"description"`
	Location         string          `db:"location" json:"location"`
	AcquisitionDate  time.Time       `db:"acquisition_date" json:"acquisition_date"`
	AcquisitionValue decimal.Decimal `db:"acquisition_value" json:"acquisition_value"`
	CategoryID       *uuid.UUID      `db:"category_id" json:"category_id"`
	IsLiability      bool            `db:"is_liability" json:"is_liability"`
	Metadata         AssetMetadata   `db:"metadata" json:"metadata"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// Validate ensures the asset adheres to domain rules
// Returns an error if validation fails
func (a *Asset) Validate() error {
	if a.Name == "" {
		return errors.New("asset name cannot be empty")
	}

	if a.UserID == uuid.Nil {
		return errors.New("asset must have an owner")
	}

	// Liabilities are recorded as positive amounts with the flag set;
	// a negative value is never valid.
	if a.Value.IsNegative() {
		return errors.New("asset value cannot be negative")
	}

	return nil
}
