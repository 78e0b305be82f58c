package domain

type Customer struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	Hash          string `db:"password_hash"`
	Tier          Tier   `db:"tier"`
	LoyaltyPoints int    `db:"loyalty_points"`
}
