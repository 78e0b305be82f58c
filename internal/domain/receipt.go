package domain

import "github.com/shopspring/decimal"

type ReceiptLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Receipt is the value object a successful checkout returns. Amounts are kept
// exact; rounding to two decimals happens only when a receipt is rendered.
type Receipt struct {
	SaleID     string `json:"sale_id"`
	CustomerID string `json:"customer_id"`

	Lines    []ReceiptLine   `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	GST      decimal.Decimal `json:"gst"`
	Total    decimal.Decimal `json:"total"`

	PointsRedeemed int `json:"points_redeemed"`
	PointsEarned   int `json:"points_earned"`
	// PointsAfterRedeem is the balance the redemption left (before earning);
	// PointsBalance is the committed balance including points earned.
	PointsAfterRedeem int `json:"points_after_redeem"`
	PointsBalance     int `json:"points_balance"`

	SaleDate     string `json:"sale_date"`
	DeliveryDate string `json:"delivery_date"`
}
