package request

// CreateTenant is the body for POST /tenants.
type CreateTenant struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
}
