package storage

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/Abdallah-SE/ecommerce-api/model"
)

// adminEntity is the entity name carried by not-found signals from this store.
const adminEntity = "Admin"

// AdminStore persists Admin rows through bun.
type AdminStore struct {
	db *bun.DB
}

// NewAdminStore creates an AdminStore on top of an open bun handle.
func NewAdminStore(db *bun.DB) *AdminStore {
	return &AdminStore{db: db}
}

// Paginate returns one page of admins ordered by id, together with the total
// row count. perPage and page are assumed pre-validated by the service layer.
func (s *AdminStore) Paginate(ctx context.Context, perPage, page int) (model.Page[model.Admin], error) {
	var admins []model.Admin

	q := s.db.NewSelect().
		Model(&admins).
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage)

	count, err := q.ScanAndCount(ctx)
	if err != nil {
		return model.Page[model.Admin]{}, &QueryError{
			Query: q.String(),
			Args:  []any{perPage, page},
			Err:   err,
		}
	}

	if admins == nil {
		admins = []model.Admin{}
	}
	return model.NewPage(admins, page, perPage, count), nil
}

// Create inserts a new admin and returns it with its generated id and
// timestamps filled in.
func (s *AdminStore) Create(ctx context.Context, admin *model.Admin) error {
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	q := s.db.NewInsert().Model(admin).Returning("id")
	if _, err := q.Exec(ctx); err != nil {
		return &QueryError{Query: q.String(), Args: []any{admin.Email}, Err: err}
	}
	return nil
}

// Find returns the admin with the given id, or a RecordNotFoundError.
func (s *AdminStore) Find(ctx context.Context, id int64) (*model.Admin, error) {
	var admin model.Admin

	q := s.db.NewSelect().Model(&admin).Where("id = ?", id)
	if err := q.Scan(ctx); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, &RecordNotFoundError{Entity: adminEntity, ID: id}
		}
		return nil, &QueryError{Query: q.String(), Args: []any{id}, Err: err}
	}
	return &admin, nil
}

// FindByEmail returns the admin with the given email, or a RecordNotFoundError.
func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin

	q := s.db.NewSelect().Model(&admin).Where("email = ?", email)
	if err := q.Scan(ctx); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, &RecordNotFoundError{Entity: adminEntity}
		}
		return nil, &QueryError{Query: q.String(), Args: []any{email}, Err: err}
	}
	return &admin, nil
}

// Update persists the mutable fields of an existing admin. The caller is
// expected to have loaded the row first; updating a missing id returns a
// RecordNotFoundError.
func (s *AdminStore) Update(ctx context.Context, admin *model.Admin) error {
	admin.UpdatedAt = time.Now().UTC()

	q := s.db.NewUpdate().
		Model(admin).
		Column("name", "email", "password", "image", "updated_at").
		Where("id = ?", admin.ID)

	res, err := q.Exec(ctx)
	if err != nil {
		return &QueryError{Query: q.String(), Args: []any{admin.ID}, Err: err}
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return &RecordNotFoundError{Entity: adminEntity, ID: admin.ID}
	}
	return nil
}

// Delete removes the admin with the given id. Deleting a missing id returns
// a RecordNotFoundError.
func (s *AdminStore) Delete(ctx context.Context, id int64) error {
	q := s.db.NewDelete().Model((*model.Admin)(nil)).Where("id = ?", id)

	res, err := q.Exec(ctx)
	if err != nil {
		return &QueryError{Query: q.String(), Args: []any{id}, Err: err}
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return &RecordNotFoundError{Entity: adminEntity, ID: id}
	}
	return nil
}
