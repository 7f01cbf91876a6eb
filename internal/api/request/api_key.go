package request

// CreateAPIKey is the body for POST /api-keys.
type CreateAPIKey struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}
