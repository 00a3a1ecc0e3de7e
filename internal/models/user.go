package models

// UserRole is the app-level role carried in the token's app_metadata.
// Identity itself lives with the external auth provider and is never persisted here.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)
