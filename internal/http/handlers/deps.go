package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/Om11042005/FITNZ/internal/config"
	"github.com/Om11042005/FITNZ/internal/repos"
	"github.com/Om11042005/FITNZ/internal/services"
)

type Deps struct {
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	CheckoutHandler  *CheckoutHandler
	SaleHandler      *SaleHandler
	CustomerHandler  *CustomerHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	saleRepo := repos.NewSaleRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	invSvc := services.NewInventoryLedger(prodRepo)
	memberSvc := services.NewMembershipService(custRepo)
	processor := services.NewSaleTransactionProcessor(db, custRepo, prodRepo, saleRepo).
		WithPayments(services.NewCardAuthorizer(), cfg.PaymentTimeout)

	return &Deps{
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		CheckoutHandler:  &CheckoutHandler{Processor: processor, Receipts: services.NewReceiptBuilder()},
		SaleHandler:      &SaleHandler{Sales: saleRepo},
		CustomerHandler:  &CustomerHandler{Members: memberSvc, Sales: saleRepo},
		AdminHandler:     &AdminHandler{Products: prodRepo, Members: memberSvc},
	}
}
