package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding represents a brokerage position fetched from the external
// account-linking service. It has no identity beyond its symbol and is
// never persisted as-is; an import transforms it into an Asset record.
type Holding struct {
	Symbol           string
	Name             string
	Quantity         decimal.Decimal
	PricePerShare    decimal.Decimal
	TotalValue       decimal.Decimal
	GainLoss         decimal.Decimal
	ChangePercentage decimal.Decimal
	AccountID        string
}

// BrokerageAccount is a linked brokerage account at the external service.
type BrokerageAccount struct {
	ID   string
	Name string
}

// ToAsset materializes the holding as an Asset record owned by userID.
// The acquisition value is derived as TotalValue - GainLoss, so the
// position's unrealized gain survives the conversion.
func (h Holding) ToAsset(userID, categoryID uuid.UUID, now time.Time) *Asset {
	catID := categoryID
	return &Asset{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             h.Name,
		Value:            h.TotalValue,
		Description:      fmt.Sprintf("%s shares of %s", h.Quantity.String(), h.Symbol),
		Location:         "SnapTrade",
		AcquisitionDate:  now,
		AcquisitionValue: h.TotalValue.Sub(h.GainLoss),
		CategoryID:       &catID,
		IsLiability:      false,
		Metadata: AssetMetadata{
			"symbol":          h.Symbol,
			"price_per_share": h.PricePerShare.InexactFloat64(),
			"quantity":        h.Quantity.InexactFloat64(),
			"currency":        "USD",
			"asset_type":      "stock",
			"source":          "snaptrade",
			"account_id":      h.AccountID,
		},
		CreatedAt: now,
	}
}
