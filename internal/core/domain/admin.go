package domain

// Admin is the single administrator identity. It is built once from
// configuration at startup and never persisted.
type Admin struct {
	Username     string
	PasswordHash string
}

// Identity is the authenticated principal attached to a guarded request.
type Identity struct {
	Username string `json:"username"`
}
