package domain

// Principal is the authenticated caller as reported by the identity provider.
// It is never persisted; Name and Email are copied into issues on create.
type Principal struct {
	Subject string `json:"sub"   validate:"required"`
	Email   string `json:"email" validate:"required"`
	Name    string `json:"name"`
	Token   string `json:"-"`
}
