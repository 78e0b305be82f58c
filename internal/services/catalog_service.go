package services

import (
	"github.com/Om11042005/FITNZ/internal/domain"
	"github.com/Om11042005/FITNZ/internal/repos"
)

type CatalogService struct {
	Products *repos.ProductRepo
}

func NewCatalogService(products *repos.ProductRepo) *CatalogService {
	return &CatalogService{Products: products}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Products.List()
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Products.Get(id)
}
