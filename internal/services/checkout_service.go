package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Om11042005/FITNZ/internal/domain"
	applog "github.com/Om11042005/FITNZ/internal/log"
	"github.com/Om11042005/FITNZ/internal/repos"
)

// gstRate is the 15% GST applied to the post-discount net amount.
var gstRate = decimal.New(15, -2)

// Checkout states. A call ends in StateCommitted (receipt returned) or
// StateRolledBack (error returned, no visible state change).
const (
	StateValidating      = "validating"
	StatePricingComputed = "pricing_computed"
	StateCommitting      = "committing"
	StateCommitted       = "committed"
	StateRolledBack      = "rolled_back"
)

type CheckoutRequest struct {
	CustomerID     string            `json:"customer_id"`
	Lines          []domain.CartLine `json:"lines"`
	PointsToRedeem int               `json:"points_to_redeem"`
	// AdHocDiscount requests the one-time 20% override for this sale only;
	// the stored tier is never touched.
	AdHocDiscount bool         `json:"ad_hoc_discount"`
	DeliveryDate  string       `json:"delivery_date,omitempty"` // YYYY-MM-DD; defaults to the sale date
	Card          *PaymentCard `json:"card,omitempty"`
}

// SaleTransactionProcessor orchestrates discounting, loyalty, inventory and
// persistence into one atomic checkout. Stock decrement, loyalty update and
// sale insert land in a single transaction: all of it commits or none of it.
type SaleTransactionProcessor struct {
	db        *sqlx.DB
	customers *repos.CustomerRepo
	products  *repos.ProductRepo
	sales     *repos.SaleRepo

	inventory *InventoryLedger
	discount  *DiscountPolicy
	loyalty   *LoyaltyLedger
	receipts  *ReceiptBuilder

	payments   PaymentAuthorizer
	payTimeout time.Duration

	now func() time.Time
}

func NewSaleTransactionProcessor(
	db *sqlx.DB,
	customers *repos.CustomerRepo,
	products *repos.ProductRepo,
	sales *repos.SaleRepo,
) *SaleTransactionProcessor {
	return &SaleTransactionProcessor{
		db:        db,
		customers: customers,
		products:  products,
		sales:     sales,
		inventory: NewInventoryLedger(products),
		discount:  NewDiscountPolicy(),
		loyalty:   NewLoyaltyLedger(),
		receipts:  NewReceiptBuilder(),
		now:       time.Now,
	}
}

// WithPayments attaches an external payment confirmation step, bounded by
// timeout. It runs before the transaction opens, so it never holds ledger locks.
func (s *SaleTransactionProcessor) WithPayments(p PaymentAuthorizer, timeout time.Duration) *SaleTransactionProcessor {
	s.payments = p
	s.payTimeout = timeout
	return s
}

// Checkout prices the cart and commits inventory, loyalty and the sale record
// as one unit. Validation and conflict errors return before any mutation; the
// caller can retry after correcting input or refreshing stock.
func (s *SaleTransactionProcessor) Checkout(ctx context.Context, req CheckoutRequest) (*domain.Receipt, error) {
	// ---- Validating ----
	applog.Info(nil, "checkout.state", map[string]any{
		"state": StateValidating, "customer_id": req.CustomerID,
	})
	if len(req.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	lines, err := mergeLines(req.Lines)
	if err != nil {
		return nil, err
	}

	cust, err := s.customers.Get(req.CustomerID)
	if err != nil {
		return nil, err
	}

	prods := make(map[string]domain.Product, len(lines))
	for _, l := range lines {
		p, perr := s.products.Get(l.ProductID)
		if perr != nil {
			return nil, perr
		}
		prods[l.ProductID] = p
	}

	// Dry-run stock check; the conditional decrement below re-verifies under
	// the transaction, so a stale read here cannot oversell.
	if err := s.inventory.CheckAvailability(lines); err != nil {
		return nil, err
	}

	redemption, err := s.loyalty.RedemptionValue(cust.LoyaltyPoints, req.PointsToRedeem)
	if err != nil {
		return nil, err
	}

	// ---- Pricing ----
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(prods[l.ProductID].Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	rate := s.discount.Resolve(cust.Tier, req.AdHocDiscount)
	discount := subtotal.Mul(rate).Add(redemption)
	if discount.GreaterThan(subtotal) {
		// combined discount never exceeds the priced value of the cart
		discount = subtotal
	}
	net := subtotal.Sub(discount)
	gst := net.Mul(gstRate)
	total := net.Add(gst)
	earned := s.loyalty.EarnedPoints(total)

	applog.Info(nil, "checkout.state", map[string]any{
		"state": StatePricingComputed, "customer_id": cust.ID,
		"subtotal": subtotal, "discount": discount, "total": total,
	})

	// External payment confirmation, bounded, before any lock is taken.
	if s.payments != nil {
		if req.Card == nil {
			return nil, domain.ErrInvalidPayment
		}
		payCtx, cancel := context.WithTimeout(ctx, s.payTimeout)
		defer cancel()
		if err := s.payments.Authorize(payCtx, *req.Card, total); err != nil {
			return nil, err
		}
	}

	// The caller may abort up to this point with zero side effects. Once the
	// transaction opens, the commit runs to completion or rolls back whole.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// ---- Committing ----
	applog.Info(nil, "checkout.state", map[string]any{
		"state": StateCommitting, "customer_id": cust.ID,
	})
	saleDate := s.now().UTC().Format(time.RFC3339)
	deliveryDate := req.DeliveryDate
	if deliveryDate == "" {
		deliveryDate = s.now().UTC().Format("2006-01-02")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, &domain.PersistenceError{Op: "begin", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
			applog.Error(nil, "checkout.state", err, map[string]any{
				"state": StateRolledBack, "customer_id": cust.ID,
			})
		}
	}()

	for _, l := range lines {
		if derr := s.products.DecrementStock(tx, l.ProductID, l.Qty); derr != nil {
			var oos *domain.OutOfStockError
			if errors.As(derr, &oos) {
				err = derr
				return nil, derr
			}
			err = &domain.PersistenceError{Op: "decrement stock", Err: derr}
			return nil, err
		}
	}

	if lerr := s.customers.ApplyLoyaltyDelta(tx, cust.ID, req.PointsToRedeem, earned); lerr != nil {
		if errors.Is(lerr, domain.ErrLoyaltyConsistency) {
			err = lerr
			return nil, lerr
		}
		err = &domain.PersistenceError{Op: "loyalty update", Err: lerr}
		return nil, err
	}

	sale := domain.Sale{
		ID:             uuid.NewString(),
		CustomerID:     cust.ID,
		Subtotal:       subtotal,
		Discount:       discount,
		GST:            gst,
		Total:          total,
		PointsRedeemed: req.PointsToRedeem,
		PointsEarned:   earned,
		SaleDate:       saleDate,
		DeliveryDate:   deliveryDate,
	}
	if cerr := s.sales.Create(tx, sale); cerr != nil {
		err = &domain.PersistenceError{Op: "insert sale", Err: cerr}
		return nil, err
	}

	items := make([]repos.SaleItemRow, 0, len(lines))
	for _, l := range lines {
		p := prods[l.ProductID]
		qty := decimal.NewFromInt(int64(l.Qty))
		it := domain.SaleItem{
			SaleID:          sale.ID,
			ProductID:       l.ProductID,
			Qty:             l.Qty,
			UnitPriceAtSale: p.Price,
			LineTotal:       p.Price.Mul(qty),
		}
		if ierr := s.sales.InsertItem(tx, it); ierr != nil {
			err = &domain.PersistenceError{Op: "insert sale item", Err: ierr}
			return nil, err
		}
		items = append(items, repos.SaleItemRow{
			ProductID:       it.ProductID,
			Name:            p.Name,
			Qty:             it.Qty,
			UnitPriceAtSale: it.UnitPriceAtSale,
			LineTotal:       it.LineTotal,
		})
	}

	if cerr := tx.Commit(); cerr != nil {
		err = &domain.PersistenceError{Op: "commit", Err: cerr}
		return nil, err
	}
	committed = true

	applog.Audit(nil, "checkout.state", map[string]any{
		"state": StateCommitted, "sale_id": sale.ID, "customer_id": cust.ID,
		"total": total, "points_earned": earned,
	})

	return s.receipts.Build(sale, items, cust.LoyaltyPoints), nil
}

// mergeLines folds duplicate product lines together (order preserved) and
// rejects non-positive quantities.
func mergeLines(in []domain.CartLine) ([]domain.CartLine, error) {
	out := make([]domain.CartLine, 0, len(in))
	idx := make(map[string]int, len(in))
	for _, l := range in {
		if l.Qty <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if i, ok := idx[l.ProductID]; ok {
			out[i].Qty += l.Qty
			continue
		}
		idx[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}
