package models

// Person is someone in a user's address book.
// People are owned by exactly one user and are what bill participants reference.
type Person struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	Note      string `db:"note"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}
