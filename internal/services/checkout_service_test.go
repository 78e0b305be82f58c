package services_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/Om11042005/FITNZ/internal/domain"
	"github.com/Om11042005/FITNZ/internal/repos"
	"github.com/Om11042005/FITNZ/internal/services"
)

func memdbAll(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // one shared in-memory database
	schema := `
	CREATE TABLE products(
	  id TEXT PRIMARY KEY, name TEXT, price NUMERIC, stock INTEGER CHECK (stock >= 0),
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT
	);
	CREATE TABLE customers(
	  id TEXT PRIMARY KEY, name TEXT, email TEXT UNIQUE, password_hash TEXT,
	  tier TEXT, loyalty_points INTEGER CHECK (loyalty_points >= 0),
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT
	);
	CREATE TABLE sales(
	  id TEXT PRIMARY KEY, customer_id TEXT, subtotal NUMERIC, discount NUMERIC,
	  gst NUMERIC, total NUMERIC, points_redeemed INTEGER, points_earned INTEGER,
	  sale_date TEXT, delivery_date TEXT
	);
	CREATE TABLE sale_items(
	  sale_id TEXT, product_id TEXT, qty INTEGER, unit_price_at_sale NUMERIC,
	  line_total NUMERIC, PRIMARY KEY(sale_id, product_id)
	);

	INSERT INTO products(id,name,price,stock) VALUES
	  ('RB001','Resistance Bands',35.00,50),
	  ('WP004','Whey Protein',50.00,40),
	  ('YM002','Yoga Mat',5.00,30),
	  ('DB003','Dumbbell Set',75.00,1);
	INSERT INTO customers(id,name,email,password_hash,tier,loyalty_points) VALUES
	  ('C101','Alice Johnson','alice@example.com','x','Gold',500),
	  ('C102','Ben Carter','ben@example.com','x','Standard',200);
	`
	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func newProcessor(db *sqlx.DB) *services.SaleTransactionProcessor {
	return services.NewSaleTransactionProcessor(
		db,
		repos.NewCustomerRepo(db),
		repos.NewProductRepo(db),
		repos.NewSaleRepo(db),
	)
}

func stockOf(t *testing.T, db *sqlx.DB, id string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT stock FROM products WHERE id=?`, id))
	return n
}

func pointsOf(t *testing.T, db *sqlx.DB, id string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT loyalty_points FROM customers WHERE id=?`, id))
	return n
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCheckout_GoldMemberSingleItem(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	r, err := proc.Checkout(context.Background(), services.CheckoutRequest{
		CustomerID: "C101",
		Lines:      []domain.CartLine{{ProductID: "RB001", Qty: 1}},
	})
	require.NoError(t, err)

	assert.True(t, r.Subtotal.Equal(dec("35")), "subtotal %s", r.Subtotal)
	assert.True(t, r.Discount.Equal(dec("5.25")), "discount %s", r.Discount)
	assert.True(t, r.GST.Equal(dec("4.4625")), "gst %s", r.GST)
	assert.True(t, r.Total.Equal(dec("34.2125")), "total %s", r.Total)
	assert.Equal(t, "34.21", r.Total.StringFixed(2))

	// floor(34.2125 / 10) = 3 points earned
	assert.Equal(t, 3, r.PointsEarned)
	assert.Equal(t, 503, r.PointsBalance)
	assert.Equal(t, 503, pointsOf(t, db, "C101"))
	assert.Equal(t, 49, stockOf(t, db, "RB001"))

	// the recorded sale is retrievable with its items
	sale, items, err := repos.NewSaleRepo(db).Get(r.SaleID)
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("34.2125")))
	require.Len(t, items, 1)
	assert.Equal(t, "RB001", items[0].ProductID)
	assert.True(t, items[0].UnitPriceAtSale.Equal(dec("35")))
}

func TestCheckout_AdHocDiscountWithRedemption(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	r, err := proc.Checkout(context.Background(), services.CheckoutRequest{
		CustomerID:     "C102",
		Lines:          []domain.CartLine{{ProductID: "WP004", Qty: 1}},
		PointsToRedeem: 100,
		AdHocDiscount:  true,
	})
	require.NoError(t, err)

	// ad-hoc 20% of 50.00 = 10.00, plus 100 points = 10.00
	assert.True(t, r.Discount.Equal(dec("20")), "discount %s", r.Discount)
	assert.True(t, r.GST.Equal(dec("4.5")), "gst %s", r.GST)
	assert.True(t, r.Total.Equal(dec("34.5")), "total %s", r.Total)

	assert.Equal(t, 100, r.PointsAfterRedeem)
	assert.Equal(t, 3, r.PointsEarned)
	assert.Equal(t, 103, pointsOf(t, db, "C102"))

	// the override is per-sale: the stored tier is untouched
	var tier string
	require.NoError(t, db.Get(&tier, `SELECT tier FROM customers WHERE id='C102'`))
	assert.Equal(t, "Standard", tier)
}

func TestCheckout_DiscountCappedAtSubtotal(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	// $5 cart, $10 of points: combined discount must cap at the subtotal
	r, err := proc.Checkout(context.Background(), services.CheckoutRequest{
		CustomerID:     "C102",
		Lines:          []domain.CartLine{{ProductID: "YM002", Qty: 1}},
		PointsToRedeem: 100,
	})
	require.NoError(t, err)

	assert.True(t, r.Discount.Equal(dec("5")), "discount %s", r.Discount)
	assert.True(t, r.Total.IsZero(), "total %s", r.Total)
	assert.Equal(t, 0, r.PointsEarned)
	assert.Equal(t, 100, pointsOf(t, db, "C102"))
}

func TestCheckout_EmptyCart(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	_, err := proc.Checkout(context.Background(), services.CheckoutRequest{CustomerID: "C101"})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckout_InvalidRedemption(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	for _, points := range []int{-1, 501} {
		_, err := proc.Checkout(context.Background(), services.CheckoutRequest{
			CustomerID:     "C101",
			Lines:          []domain.CartLine{{ProductID: "RB001", Qty: 1}},
			PointsToRedeem: points,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRedemption)
	}
	// zero side effects
	assert.Equal(t, 500, pointsOf(t, db, "C101"))
	assert.Equal(t, 50, stockOf(t, db, "RB001"))
}

func TestCheckout_OutOfStockIsAllOrNothing(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	_, err := proc.Checkout(context.Background(), services.CheckoutRequest{
		CustomerID: "C101",
		Lines: []domain.CartLine{
			{ProductID: "RB001", Qty: 2},
			{ProductID: "DB003", Qty: 5}, // only 1 in stock
		},
	})
	var oos *domain.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, "DB003", oos.ProductID)

	// no partial decrement anywhere
	assert.Equal(t, 50, stockOf(t, db, "RB001"))
	assert.Equal(t, 1, stockOf(t, db, "DB003"))
	assert.Equal(t, 500, pointsOf(t, db, "C101"))
}

func TestCheckout_RetryAfterReplenishPricesIdentically(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	req := services.CheckoutRequest{
		CustomerID: "C101",
		Lines:      []domain.CartLine{{ProductID: "DB003", Qty: 5}},
	}
	_, err := proc.Checkout(context.Background(), req)
	var oos *domain.OutOfStockError
	require.ErrorAs(t, err, &oos)

	require.NoError(t, repos.NewProductRepo(db).SetStock("DB003", 5))

	r, err := proc.Checkout(context.Background(), req)
	require.NoError(t, err)
	// 5 x 75.00 = 375, Gold 15% = 56.25, net 318.75, GST 47.8125
	assert.True(t, r.Subtotal.Equal(dec("375")), "subtotal %s", r.Subtotal)
	assert.True(t, r.Total.Equal(dec("366.5625")), "total %s", r.Total)
	assert.Equal(t, 0, stockOf(t, db, "DB003"))
}

func TestCheckout_DuplicateLinesMerge(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	r, err := proc.Checkout(context.Background(), services.CheckoutRequest{
		CustomerID: "C102",
		Lines: []domain.CartLine{
			{ProductID: "RB001", Qty: 1},
			{ProductID: "RB001", Qty: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, r.Lines, 1)
	assert.Equal(t, 3, r.Lines[0].Qty)
	assert.Equal(t, 47, stockOf(t, db, "RB001"))
}

func TestCheckout_NonPositiveQuantity(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	_, err := proc.Checkout(context.Background(), services.CheckoutRequest{
		CustomerID: "C101",
		Lines:      []domain.CartLine{{ProductID: "RB001", Qty: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCheckout_UnknownCustomerAndProduct(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	_, err := proc.Checkout(context.Background(), services.CheckoutRequest{
		CustomerID: "C999",
		Lines:      []domain.CartLine{{ProductID: "RB001", Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = proc.Checkout(context.Background(), services.CheckoutRequest{
		CustomerID: "C101",
		Lines:      []domain.CartLine{{ProductID: "NOPE", Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCheckout_AbortBeforeCommit(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := proc.Checkout(ctx, services.CheckoutRequest{
		CustomerID: "C101",
		Lines:      []domain.CartLine{{ProductID: "RB001", Qty: 1}},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 50, stockOf(t, db, "RB001"))
	assert.Equal(t, 500, pointsOf(t, db, "C101"))
}

func TestCheckout_PersistenceFailureRollsBackLedgers(t *testing.T) {
	db := memdbAll(t)
	proc := newProcessor(db)

	// sabotage the sale-items table so the commit fails after the ledgers
	// have already been written inside the transaction
	_, err := db.Exec(`DROP TABLE sale_items`)
	require.NoError(t, err)

	_, err = proc.Checkout(context.Background(), services.CheckoutRequest{
		CustomerID:     "C101",
		Lines:          []domain.CartLine{{ProductID: "RB001", Qty: 3}},
		PointsToRedeem: 50,
	})
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)

	// decremented stock and loyalty delta were rolled back with the sale
	assert.Equal(t, 50, stockOf(t, db, "RB001"))
	assert.Equal(t, 500, pointsOf(t, db, "C101"))
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM sales`))
	assert.Equal(t, 0, n)
}
