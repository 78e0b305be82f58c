package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Om11042005/FITNZ/internal/domain"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// ---------- History list summary ----------
type SaleSummary struct {
	ID           string          `db:"id"`
	CustomerID   string          `db:"customer_id"`
	Total        decimal.Decimal `db:"total"`
	GST          decimal.Decimal `db:"gst"`
	SaleDate     string          `db:"sale_date"`
	DeliveryDate string          `db:"delivery_date"`
}

// ---------- Sale detail (joined with product names) ----------
type SaleItemRow struct {
	ProductID       string          `db:"product_id"`
	Name            string          `db:"name"`
	Qty             int             `db:"qty"`
	UnitPriceAtSale decimal.Decimal `db:"unit_price_at_sale"`
	LineTotal       decimal.Decimal `db:"line_total"`
}

// Create inserts the sale header inside tx.
func (r *SaleRepo) Create(tx *sqlx.Tx, s domain.Sale) error {
	_, err := tx.Exec(`
	  INSERT INTO sales
	    (id, customer_id, subtotal, discount, gst, total, points_redeemed, points_earned, sale_date, delivery_date)
	  VALUES
	    (?,  ?,           ?,        ?,        ?,   ?,     ?,               ?,             ?,         ?)
	`, s.ID, s.CustomerID, s.Subtotal, s.Discount, s.GST, s.Total,
		s.PointsRedeemed, s.PointsEarned, s.SaleDate, s.DeliveryDate)
	return err
}

// InsertItem inserts a single line item inside tx.
func (r *SaleRepo) InsertItem(tx *sqlx.Tx, it domain.SaleItem) error {
	_, err := tx.Exec(`
	  INSERT INTO sale_items(sale_id, product_id, qty, unit_price_at_sale, line_total)
	  VALUES(?, ?, ?, ?, ?)
	`, it.SaleID, it.ProductID, it.Qty, it.UnitPriceAtSale, it.LineTotal)
	return err
}

func (r *SaleRepo) Get(saleID string) (domain.Sale, []SaleItemRow, error) {
	var s domain.Sale
	if err := r.db.Get(&s, `
		SELECT id, customer_id, subtotal, discount, gst, total,
		       points_redeemed, points_earned, sale_date, delivery_date
		FROM sales
		WHERE id = ?
	`, saleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Sale{}, nil, sql.ErrNoRows
		}
		return domain.Sale{}, nil, err
	}

	var items []SaleItemRow
	if err := r.db.Select(&items, `
		SELECT si.product_id, p.name, si.qty, si.unit_price_at_sale, si.line_total
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ?
		ORDER BY p.name
	`, saleID); err != nil {
		return domain.Sale{}, nil, err
	}

	return s, items, nil
}

func (r *SaleRepo) ListByCustomer(customerID string) ([]SaleSummary, error) {
	var out []SaleSummary
	err := r.db.Select(&out, `
		SELECT id, customer_id, total, gst, sale_date, delivery_date
		FROM sales
		WHERE customer_id = ?
		ORDER BY datetime(sale_date) DESC
	`, customerID)
	return out, err
}
