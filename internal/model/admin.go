package model

// Admin is a registrar administrator account. The password is stored
// as a bcrypt hash and never serialized into API responses.
type Admin struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Clone returns an independent copy of the admin.
func (a Admin) Clone() Admin { return a }

// Public returns the response-safe projection of the admin.
func (a Admin) Public() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"name":       a.Name,
		"email":      a.Email,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	}
}
