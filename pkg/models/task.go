package models

// Task is a follow-up item, optionally linked to a listing. Tasks linked to
// a listing are removed when that listing is deleted.
type Task struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description,omitempty"`
	DueDate             string `json:"dueDate,omitempty"`
	IsCompleted         bool   `json:"isCompleted"`
	AssociatedListingID string `json:"associatedListingId,omitempty"`
	CreatedAt           string `json:"createdAt"`
}

// TaskInput carries user-provided data for creating a task.
type TaskInput struct {
	Title               string `json:"title" validate:"required"`
	Description         string `json:"description"`
	DueDate             string `json:"dueDate"`
	AssociatedListingID string `json:"associatedListingId"`
}

// TaskUpdate carries a partial task update; nil fields are left unchanged.
type TaskUpdate struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	DueDate             *string `json:"dueDate"`
	IsCompleted         *bool   `json:"isCompleted"`
	AssociatedListingID *string `json:"associatedListingId"`
}
