// Package service implements the business logic of the admin API. Services
// sit between the HTTP gateway and the storage layer: they enforce input
// invariants, convert store misses into domain errors via the errors factory,
// and never touch the transport.
package service

import (
	"context"
	stderrors "errors"

	"github.com/Abdallah-SE/ecommerce-api/auth"
	"github.com/Abdallah-SE/ecommerce-api/errors"
	"github.com/Abdallah-SE/ecommerce-api/model"
	"github.com/Abdallah-SE/ecommerce-api/storage"
)

// Pagination bounds for admin listings.
const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// AdminRepository is the persistence surface AdminService depends on.
type AdminRepository interface {
	Paginate(ctx context.Context, perPage, page int) (model.Page[model.Admin], error)
	Create(ctx context.Context, admin *model.Admin) error
	Find(ctx context.Context, id int64) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
	Delete(ctx context.Context, id int64) error
}

// AdminService provides admin account management.
type AdminService struct {
	repo AdminRepository
}

// NewAdminService creates an AdminService on top of a repository.
func NewAdminService(repo AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

// PaginateAdmins returns one page of admins. Out-of-range perPage values fall
// back to the default; page is floored at 1. Store failures propagate to the
// boundary untouched.
func (s *AdminService) PaginateAdmins(ctx context.Context, perPage, page int) (model.Page[model.Admin], error) {
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	return s.repo.Paginate(ctx, perPage, page)
}

// CreateAdmin creates an admin account, hashing the plaintext password before
// it reaches storage.
func (s *AdminService) CreateAdmin(ctx context.Context, in model.AdminInput) (*model.Admin, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errors.CreationFailed("Admin", map[string]any{
			errors.ContextError: err.Error(),
		})
	}

	admin := &model.Admin{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Image:    in.Image,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, errors.CreationFailed("Admin", map[string]any{
			errors.ContextError: err.Error(),
			errors.ContextData:  map[string]any{"name": in.Name, "email": in.Email},
		})
	}
	return admin, nil
}

// FindAdmin returns the admin with the given id or a not-found domain error.
func (s *AdminService) FindAdmin(ctx context.Context, id int64) (*model.Admin, error) {
	admin, err := s.repo.Find(ctx, id)
	if err != nil {
		var miss *storage.RecordNotFoundError
		if stderrors.As(err, &miss) {
			return nil, errors.NotFound("Admin", id)
		}
		return nil, err
	}
	return admin, nil
}

// UpdateAdmin applies the non-empty input fields to an existing admin. The
// password is re-hashed only when a new one is supplied. A missing id yields
// a not-found domain error; other store failures yield update-failed.
func (s *AdminService) UpdateAdmin(ctx context.Context, id int64, in model.AdminInput) (*model.Admin, error) {
	admin, err := s.FindAdmin(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		admin.Name = in.Name
	}
	if in.Email != "" {
		admin.Email = in.Email
	}
	if in.Image != "" {
		admin.Image = in.Image
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, errors.UpdateFailed("Admin", id, map[string]any{
				errors.ContextError: err.Error(),
			})
		}
		admin.Password = hash
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, errors.UpdateFailed("Admin", id, map[string]any{
			errors.ContextError: err.Error(),
		})
	}
	return admin, nil
}

// DeleteAdmin removes an admin. A missing id yields a not-found domain error;
// other store failures yield deletion-failed.
func (s *AdminService) DeleteAdmin(ctx context.Context, id int64) error {
	if _, err := s.FindAdmin(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		var miss *storage.RecordNotFoundError
		if stderrors.As(err, &miss) {
			return errors.NotFound("Admin", id)
		}
		return errors.DeletionFailed("Admin", id, map[string]any{
			errors.ContextError: err.Error(),
		})
	}
	return nil
}
