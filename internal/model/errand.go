package model

// Errand is a checklist item stored inside its Subtask row.
type Errand struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
}
