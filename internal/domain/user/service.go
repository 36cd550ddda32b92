// internal/domain/user/service.go
package user

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/types"
	"github.com/your-org/pos-backend/internal/pkg/validation"
)

// Remote is the user side of the bookkeeping API
type Remote interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, req *CreateRequest) (*User, error)
	DeleteUser(ctx context.Context, id types.ID) error
}

// Service handles staff account management
type Service struct {
	remote Remote
	log    logrus.FieldLogger
}

// NewService creates a new user service
func NewService(remote Remote, log logrus.FieldLogger) *Service {
	return &Service{
		remote: remote,
		log:    log.WithField("component", "user"),
	}
}

// List returns all staff accounts
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.remote.ListUsers(ctx)
}

// Create validates and creates a staff account. Cashier is the default role.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Role == "" {
		req.Role = RoleCashier
	}

	if err := validation.Struct(req); err != nil {
		return nil, apperr.Validation("user.Create", validation.Message(err))
	}

	created, err := s.remote.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": created.ID,
		"role":    req.Role,
	}).Info("User created")
	return created, nil
}

// Delete removes a staff account. Users cannot delete themselves.
func (s *Service) Delete(ctx context.Context, id, actorID types.ID) error {
	if id.IsZero() {
		return apperr.Validation("user.Delete", "User id is required")
	}
	if !actorID.IsZero() && id == actorID {
		return apperr.Validation("user.Delete", "You cannot delete your own account")
	}

	if err := s.remote.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.log.WithField("user_id", id).Info("User deleted")
	return nil
}
