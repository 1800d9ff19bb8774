package domain

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "bg-gray-100 text-gray-800"

// Category is a user-defined label. Color is an opaque presentation value.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// User is the identity attached to an authenticated session.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Email string `json:"email" yaml:"email"`
	Name  string `json:"name" yaml:"name"`
}
