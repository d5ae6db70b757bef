package models

// User is an account that owns expenses. Users are provisioned out of band
// (see cmd/adduser); the API only reads them for authentication.
type User struct {
	ID             string `json:"user_id"`
	Username       string `json:"username"`
	HashedPassword string `json:"-"`
	IsActive       bool   `json:"is_active"`
}
