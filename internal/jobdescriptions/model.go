package jobdescriptions

import "time"

// JobDescription is a stored vacancy a user wants to be matched against.
type JobDescription struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Company     string    `json:"company,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
