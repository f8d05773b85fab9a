package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrCustomerNotFound is returned when a customer id does not resolve.
var ErrCustomerNotFound = errors.New("customer not found")

// listLimit caps search results; the address book UI shows at most a
// screenful.
const listLimit = 20

// Service defines customer business logic.
type Service interface {
	Create(ctx context.Context, req UpsertCustomerRequest) (*Customer, error)
	List(ctx context.Context, search string) ([]*Customer, error)
	Update(ctx context.Context, id string, req UpsertCustomerRequest) (*Customer, error)
	Delete(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new customer service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, req UpsertCustomerRequest) (*Customer, error) {
	c := &Customer{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, search string) ([]*Customer, error) {
	return s.repo.List(ctx, search, listLimit)
}

func (s *service) Update(ctx context.Context, id string, req UpsertCustomerRequest) (*Customer, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	c, err := s.repo.GetByID(ctx, cid)
	if err != nil {
		return nil, err
	}

	c.Name = req.Name
	c.Email = req.Email
	c.Phone = req.Phone
	c.Address = req.Address

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	cid, err := uuid.Parse(id)
	if err != nil {
		return ErrCustomerNotFound
	}
	return s.repo.Delete(ctx, cid)
}
