// Package models holds the persistent entities of the EduSync platform.
package models

// Role values stored on a user record.
const (
	RoleStudent    = "Student"
	RoleInstructor = "Instructor"
)

// User is a platform account. PasswordHash holds an argon2id-encoded
// credential and must never be serialized to API responses.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
}
