package profiles

import "time"

// Profile is a candidate's structured CV, owned by one user.
type Profile struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	FullName        string           `json:"fullName"`
	Headline        string           `json:"headline"`
	Summary         string           `json:"summary"`
	Education       []Education      `json:"education"`
	Languages       []Language       `json:"languages"`
	Skills          []Skill          `json:"skills"`
	WorkExperiences []WorkExperience `json:"workExperiences"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Education is an order-sensitive profile entry; OrderIndex is zero-based and
// assigned by position in the submitted sequence.
type Education struct {
	ID         string `json:"id"`
	ProfileID  string `json:"profileId"`
	School     string `json:"school"`
	Degree     string `json:"degree,omitempty"`
	Field      string `json:"field,omitempty"`
	StartYear  *int   `json:"startYear,omitempty"`
	EndYear    *int   `json:"endYear,omitempty"`
	OrderIndex int    `json:"orderIndex"`
}

// Language is an unordered profile entry with optional proficiency.
type Language struct {
	ID          string  `json:"id"`
	ProfileID   string  `json:"profileId"`
	Name        string  `json:"name"`
	Proficiency *string `json:"proficiency,omitempty"`
}

// Skill is an unordered profile entry with optional category and proficiency.
type Skill struct {
	ID          string  `json:"id"`
	ProfileID   string  `json:"profileId"`
	Name        string  `json:"name"`
	Category    *string `json:"category,omitempty"`
	Proficiency *string `json:"proficiency,omitempty"`
}

// WorkExperience is an order-sensitive profile entry.
type WorkExperience struct {
	ID          string  `json:"id"`
	ProfileID   string  `json:"profileId"`
	Company     string  `json:"company"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	OrderIndex  int     `json:"orderIndex"`
}
