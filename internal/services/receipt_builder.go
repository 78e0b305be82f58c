package services

import (
	"fmt"
	"strings"

	"github.com/Om11042005/FITNZ/internal/domain"
	"github.com/Om11042005/FITNZ/internal/repos"
)

// ReceiptBuilder turns a committed sale into the Receipt value object and the
// printable text the terminal shows. No business rules live here; amounts
// arrive exact and are rounded to two decimals only when rendered.
type ReceiptBuilder struct{}

func NewReceiptBuilder() *ReceiptBuilder { return &ReceiptBuilder{} }

// Build assembles a Receipt. priorBalance is the loyalty balance before the
// checkout touched it.
func (ReceiptBuilder) Build(sale domain.Sale, items []repos.SaleItemRow, priorBalance int) *domain.Receipt {
	lines := make([]domain.ReceiptLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.ReceiptLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPriceAtSale,
			LineTotal: it.LineTotal,
		})
	}
	return &domain.Receipt{
		SaleID:            sale.ID,
		CustomerID:        sale.CustomerID,
		Lines:             lines,
		Subtotal:          sale.Subtotal,
		Discount:          sale.Discount,
		GST:               sale.GST,
		Total:             sale.Total,
		PointsRedeemed:    sale.PointsRedeemed,
		PointsEarned:      sale.PointsEarned,
		PointsAfterRedeem: priorBalance - sale.PointsRedeemed,
		PointsBalance:     priorBalance - sale.PointsRedeemed + sale.PointsEarned,
		SaleDate:          sale.SaleDate,
		DeliveryDate:      sale.DeliveryDate,
	}
}

// Render produces the printable receipt.
func (ReceiptBuilder) Render(r *domain.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FIT NZ - TAX RECEIPT\n")
	fmt.Fprintf(&b, "Sale %s  %s\n", r.SaleID, r.SaleDate)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 38))
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%-22s x%-3d $%s\n", l.Name, l.Qty, l.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 38))
	fmt.Fprintf(&b, "Subtotal:             $%s\n", r.Subtotal.StringFixed(2))
	if r.Discount.IsPositive() {
		fmt.Fprintf(&b, "Discount:            -$%s\n", r.Discount.StringFixed(2))
	}
	fmt.Fprintf(&b, "GST (15%%):            $%s\n", r.GST.StringFixed(2))
	fmt.Fprintf(&b, "TOTAL:                $%s\n", r.Total.StringFixed(2))
	if r.PointsRedeemed > 0 {
		fmt.Fprintf(&b, "Points redeemed:       %d\n", r.PointsRedeemed)
	}
	fmt.Fprintf(&b, "Points earned:         %d\n", r.PointsEarned)
	fmt.Fprintf(&b, "Points balance:        %d\n", r.PointsBalance)
	fmt.Fprintf(&b, "Delivery date:         %s\n", r.DeliveryDate)
	return b.String()
}
