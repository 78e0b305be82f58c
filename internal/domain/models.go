package domain

import "github.com/shopspring/decimal"

// Tier is a customer's stored membership level. The baseline discount rate
// for each tier lives in the services.DiscountPolicy lookup table.
type Tier string

const (
	TierStandard Tier = "Standard"
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierStudent  Tier = "Student"
)

// ValidTier reports whether s names a known membership tier.
func ValidTier(s string) bool {
	switch Tier(s) {
	case TierStandard, TierBronze, TierSilver, TierGold, TierStudent:
		return true
	}
	return false
}

type Product struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Stock     int             `db:"stock"`
	CreatedAt string          `db:"created_at"`
	UpdatedAt string          `db:"updated_at"`
}

// CartLine is one requested line of a checkout. Built by the caller for the
// duration of a single checkout; never persisted on its own.
type CartLine struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type Sale struct {
	ID             string          `db:"id"`
	CustomerID     string          `db:"customer_id"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	Discount       decimal.Decimal `db:"discount"`
	GST            decimal.Decimal `db:"gst"`
	Total          decimal.Decimal `db:"total"`
	PointsRedeemed int             `db:"points_redeemed"`
	PointsEarned   int             `db:"points_earned"`
	SaleDate       string          `db:"sale_date"`
	DeliveryDate   string          `db:"delivery_date"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

// SaleItem freezes the unit price at the moment of sale; later product price
// changes never touch recorded sales.
type SaleItem struct {
	SaleID          string          `db:"sale_id"`
	ProductID       string          `db:"product_id"`
	Qty             int             `db:"qty"`
	UnitPriceAtSale decimal.Decimal `db:"unit_price_at_sale"`
	LineTotal       decimal.Decimal `db:"line_total"`
}
