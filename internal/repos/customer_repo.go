package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"github.com/Om11042005/FITNZ/internal/domain"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `
	  SELECT id, name, email, password_hash, tier, loyalty_points
	  FROM customers
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return c, err
}

// UpdateTier changes the stored membership level. The checkout engine never
// calls this; an ad-hoc discount override is priced per sale, not persisted.
func (r *CustomerRepo) UpdateTier(id string, tier domain.Tier) error {
	res, err := r.db.Exec(`
		UPDATE customers SET tier = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, tier, id)
	if err != nil {
		return pkgerrors.Wrap(err, "update tier")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// ApplyLoyaltyDelta commits balance - redeemed + earned inside tx. The guard
// repeats the redemption validation at the stored row, so a stale snapshot or
// a concurrent redemption cannot push the balance negative.
func (r *CustomerRepo) ApplyLoyaltyDelta(tx *sqlx.Tx, customerID string, redeemed, earned int) error {
	res, err := tx.Exec(`
		UPDATE customers
		SET loyalty_points = loyalty_points - ? + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND loyalty_points - ? + ? >= 0
	`, redeemed, earned, customerID, redeemed, earned)
	if err != nil {
		return pkgerrors.Wrap(err, "apply loyalty delta")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrLoyaltyConsistency
	}
	return nil
}
