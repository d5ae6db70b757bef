package models

// Category is a spending category. Categories are never physically deleted;
// "deleting" one only clears IsActive so historic expenses keep a valid
// reference.
type Category struct {
	ID       string `json:"category_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// CategoryCreate is the payload accepted when creating a category.
// IsActive defaults to true when omitted.
type CategoryCreate struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// CategoryUpdate is the payload accepted when replacing a category.
// Updates are full replacements, not merges.
type CategoryUpdate struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}
