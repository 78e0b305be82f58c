package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"github.com/Om11042005/FITNZ/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, name, price, stock, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  ORDER BY name
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, price, stock, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, err
}

// Stock returns the current stock count. Missing product maps to ErrProductNotFound.
func (r *ProductRepo) Stock(id string) (int, error) {
	var stock int
	err := r.db.Get(&stock, `SELECT stock FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrProductNotFound
	}
	return stock, err
}

// DecrementStock atomically subtracts "by" units inside tx, guarded by the
// stored stock value. Zero rows affected means another checkout took the
// units first (or the dry-run view was stale), so the caller must abort.
func (r *ProductRepo) DecrementStock(tx *sqlx.Tx, productID string, by int) error {
	res, err := tx.Exec(`
		UPDATE products
		SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?
	`, by, productID, by)
	if err != nil {
		return pkgerrors.Wrap(err, "decrement stock")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return &domain.OutOfStockError{ProductID: productID}
	}
	return nil
}

// SetStock sets the stock count for a product (admin replenishment).
func (r *ProductRepo) SetStock(productID string, stock int) error {
	res, err := r.db.Exec(`
		UPDATE products SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, stock, productID)
	if err != nil {
		return pkgerrors.Wrap(err, "upsert stock")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
