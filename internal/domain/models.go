package domain

import "time"

// Domain contains core models shared by the client and its consumers.

// User is a user record as served by the remote directory.
type User struct {
	ID        uint32    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Equal reports whether u and other describe the same record.
// CreatedAt is compared by instant, so decoded and constructed values match.
func (u User) Equal(other User) bool {
	return u.ID == other.ID &&
		u.Name == other.Name &&
		u.Email == other.Email &&
		u.IsActive == other.IsActive &&
		u.CreatedAt.Equal(other.CreatedAt)
}
