package services

import (
	"github.com/Om11042005/FITNZ/internal/domain"
	"github.com/Om11042005/FITNZ/internal/repos"
)

// InventoryLedger owns the decrement-only view of sellable units. The dry-run
// check here is advisory; the authoritative guard is the conditional UPDATE in
// ProductRepo.DecrementStock, which runs inside the checkout transaction.
type InventoryLedger struct {
	Products *repos.ProductRepo
}

func NewInventoryLedger(products *repos.ProductRepo) *InventoryLedger {
	return &InventoryLedger{Products: products}
}

// CheckAvailability verifies stock >= qty for every line and reports the first
// violating product. No mutation.
func (s *InventoryLedger) CheckAvailability(lines []domain.CartLine) error {
	for _, line := range lines {
		stock, err := s.Products.Stock(line.ProductID)
		if err != nil {
			return err
		}
		if stock < line.Qty {
			return &domain.OutOfStockError{ProductID: line.ProductID}
		}
	}
	return nil
}

// Availability converts a stock count to IN_STOCK / LOW_STOCK / OUT_OF_STOCK
// for display.
func (s *InventoryLedger) Availability(productID string) (domain.Availability, error) {
	stock, err := s.Products.Stock(productID)
	if err != nil {
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case stock >= 5:
		status = "IN_STOCK"
	case stock > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: stock}, nil
}
