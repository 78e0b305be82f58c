package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// a pooled second connection would see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog/customers if DB is empty (idempotent; safe to run every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products (stock lives on the product row; the stock ledger is this column)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  tier TEXT NOT NULL DEFAULT 'Standard'
    CHECK (tier IN ('Standard','Bronze','Silver','Gold','Student')),
  loyalty_points INTEGER NOT NULL DEFAULT 0 CHECK (loyalty_points >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers(LOWER(email));

-- Sales (immutable once written)
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL REFERENCES customers(id),
  subtotal NUMERIC NOT NULL,
  discount NUMERIC NOT NULL,
  gst NUMERIC NOT NULL,
  total NUMERIC NOT NULL CHECK (total >= 0),
  points_redeemed INTEGER NOT NULL DEFAULT 0,
  points_earned INTEGER NOT NULL DEFAULT 0,
  sale_date TEXT NOT NULL,
  delivery_date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales(customer_id);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);

CREATE TABLE IF NOT EXISTS sale_items(
  sale_id TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price_at_sale NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  PRIMARY KEY (sale_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products/customers")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO products(id,name,price,stock) VALUES
	  ('RB001','Resistance Bands',35.00,50),
	  ('YM002','Yoga Mat',45.50,30),
	  ('DB003','Dumbbell Set',75.00,0),
	  ('PS004','Whey Protein',90.00,40)`)

	type c struct {
		ID, Name, Email, Tier, Hash string
		Points                      int
	}
	mk := func(id, name, email, tier, raw string, points int) c {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return c{ID: id, Name: name, Email: email, Tier: tier, Hash: string(h), Points: points}
	}
	customers := []c{
		mk("C101", "Alice Johnson", "alice@example.com", "Gold", "alice123!A", 500),
		mk("C102", "Ben Carter", "ben@example.com", "Standard", "ben123!Bx", 200),
		mk("C103", "Mia Patel", "mia@example.com", "Student", "mia123!Mx", 0),
	}
	for _, x := range customers {
		if _, err := tx.Exec(`
			INSERT INTO customers(id,name,email,password_hash,tier,loyalty_points)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Name, x.Email, x.Hash, x.Tier, x.Points); err != nil {
			return err
		}
	}

	return tx.Commit()
}
