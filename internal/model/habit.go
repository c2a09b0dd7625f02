package model

// Habit is a recurring practice tracked on the board. Habits are read
// from the server and owned by exactly one user; the client does not
// create or modify them in normal flow.
type Habit struct {
	// ID is the server-assigned unique identifier.
	ID int `json:"id"`

	// Name is the display label.
	Name string `json:"name"`

	// Slug is the human-readable identifier, used to derive record slugs.
	Slug string `json:"slug"`

	// User is the ID of the owning user.
	User int `json:"user"`
}

// FallbackHabits returns the fixed habit set shown when the API is
// unreachable at bootstrap. These carry no server state; toggling is
// disabled while they are in use.
func FallbackHabits() []Habit {
	return []Habit{
		{ID: 1, Name: "Пост", Slug: "post"},
		{ID: 2, Name: "Техеджут", Slug: "techedjut"},
		{ID: 3, Name: "КК", Slug: "kk"},
		{ID: 4, Name: "Джевшен", Slug: "djevshen"},
		{ID: 5, Name: "Тарсир", Slug: "tarsir"},
		{ID: 6, Name: "Гимнастика/холодный душ/прогулка", Slug: "gymnastics"},
		{ID: 7, Name: "Настрой на благополучный день", Slug: "mood"},
	}
}
