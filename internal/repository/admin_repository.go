package repository

import (
	"strings"

	"github.com/cisclab/registrar-backend/internal/apperror"
	"github.com/cisclab/registrar-backend/internal/model"
	"github.com/cisclab/registrar-backend/internal/store"
)

// AdminRepository manages registrar administrator accounts, persisted
// through the same collection store as the academic records.
type AdminRepository struct {
	store *store.Store[model.Admin]
}

// NewAdminRepository creates an AdminRepository over the given store.
func NewAdminRepository(st *store.Store[model.Admin]) *AdminRepository {
	return &AdminRepository{store: st}
}

// GetByID retrieves an admin by id. Returns (nil, nil) when the id
// does not exist.
func (r *AdminRepository) GetByID(id int) (*model.Admin, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Items {
		if doc.Items[i].ID == id {
			admin := doc.Items[i].Clone()
			return &admin, nil
		}
	}
	return nil, nil
}

// GetByEmail retrieves an admin by email (case-insensitive). Returns
// (nil, nil) when no account matches.
func (r *AdminRepository) GetByEmail(email string) (*model.Admin, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Items {
		if strings.EqualFold(doc.Items[i].Email, email) {
			admin := doc.Items[i].Clone()
			return &admin, nil
		}
	}
	return nil, nil
}

// Create validates and persists a new admin account. The password must
// already be hashed by the caller.
func (r *AdminRepository) Create(name, email, passwordHash string) (*model.Admin, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.NewValidationf("name", "name must be a non-empty string")
	}
	if strings.TrimSpace(email) == "" {
		return nil, apperror.NewValidationf("email", "email must be a non-empty string")
	}
	if passwordHash == "" {
		return nil, apperror.NewValidationf("password", "password hash is required")
	}

	existing, err := r.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewValidationf("email", "an admin with email %s already exists", email)
	}

	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	admin := model.Admin{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
	}
	admin.ID = doc.ClaimNextID(func(a model.Admin) int { return a.ID })
	admin.CreatedAt = nowStamp()
	admin.UpdatedAt = admin.CreatedAt

	doc.Items = append(doc.Items, admin)
	if err := r.store.Save(doc); err != nil {
		return nil, err
	}

	out := admin.Clone()
	return &out, nil
}
