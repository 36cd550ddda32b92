// internal/domain/customer/service.go
package customer

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/validation"
)

// Remote is the customer side of the bookkeeping API
type Remote interface {
	ListCustomers(ctx context.Context, name string) ([]Customer, error)
	CreateCustomer(ctx context.Context, req *CreateRequest) (*Customer, error)
}

// Service handles customer operations
type Service struct {
	remote Remote
	log    logrus.FieldLogger
}

// NewService creates a new customer service
func NewService(remote Remote, log logrus.FieldLogger) *Service {
	return &Service{
		remote: remote,
		log:    log.WithField("component", "customer"),
	}
}

// List returns customers, optionally filtered by name
func (s *Service) List(ctx context.Context, name string) ([]Customer, error) {
	return s.remote.ListCustomers(ctx, strings.TrimSpace(name))
}

// Create validates and creates a customer
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validation.Struct(req); err != nil {
		return nil, apperr.Validation("customer.Create", validation.Message(err))
	}

	created, err := s.remote.CreateCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithField("customer_id", created.ID).Info("Customer created")
	return created, nil
}
