package models

// User is an administrator account allowed to record and correct games.
// Regular players have no accounts; they exist only as display names on
// game records.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the login name of the administrator.
	Name string

	// PasswordHash is the bcrypt hash of the administrator's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
