package services

import (
	"github.com/Om11042005/FITNZ/internal/domain"
	"github.com/Om11042005/FITNZ/internal/repos"
)

// MembershipService owns explicit tier changes (upgrades at the counter).
// This is the only path that mutates a stored tier.
type MembershipService struct {
	Customers *repos.CustomerRepo
}

func NewMembershipService(customers *repos.CustomerRepo) *MembershipService {
	return &MembershipService{Customers: customers}
}

func (s *MembershipService) Get(id string) (domain.Customer, error) {
	return s.Customers.Get(id)
}

func (s *MembershipService) ChangeTier(customerID string, tier domain.Tier) error {
	if !domain.ValidTier(string(tier)) {
		return domain.ErrInvalidTier
	}
	return s.Customers.UpdateTier(customerID, tier)
}
