package users

import "time"

// User is a credential record. Username is the unique key; PasswordHash is a
// bcrypt digest and never allows password recovery. IsActive=false blocks
// login but is otherwise inert.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Email        string
	CreatedAt    time.Time
	IsActive     bool
}
