package model

// Category represents a named expense category.
type Category struct {
	Name string
	ID   int
}

// DefaultCategories are seeded into an empty category set on first run.
var DefaultCategories = []string{
	"Food",
	"Transportation",
	"Housing",
	"Entertainment",
	"Utilities",
	"Healthcare",
	"Education",
	"Shopping",
	"Other",
}

// AddResult is the outcome of registering a category name.
type AddResult int

const (
	// CategoryAdded means a new category row was inserted.
	CategoryAdded AddResult = iota
	// CategoryExists means the name was already registered and nothing changed.
	CategoryExists
)

func (r AddResult) String() string {
	switch r {
	case CategoryAdded:
		return "added"
	case CategoryExists:
		return "already exists"
	default:
		return "unknown"
	}
}
