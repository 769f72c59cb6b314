package entity

// User is never deleted; Email is unique as stored.
type User struct {
	Base
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
}
