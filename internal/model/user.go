package model

// User is the account that owns habits and completion records.
// Exactly one user is active per session; the client never deletes users.
type User struct {
	// ID is the server-assigned unique identifier.
	ID int `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Age is carried as a string on the wire.
	Age string `json:"age"`

	// Slug is the human-readable identifier.
	Slug string `json:"slug"`
}

// DefaultUser is the user created at bootstrap when the server has none.
func DefaultUser() User {
	return User{
		Name: "Default User",
		Age:  "25",
		Slug: "default-user",
	}
}
