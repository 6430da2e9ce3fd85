package profiles

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("profile not found")

// Repo persists profiles and their sub-collections.
//
// The Replace* methods swap a sub-collection atomically: the previous rows
// for the profile are removed and the submitted rows take their place in a
// single transaction. The returned count is the number of rows written.
type Repo interface {
	Upsert(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	ReplaceEducation(ctx context.Context, profileID string, items []Education) (int, error)
	ReplaceLanguages(ctx context.Context, profileID string, items []Language) (int, error)
	ReplaceSkills(ctx context.Context, profileID string, items []Skill) (int, error)
	ReplaceWorkExperiences(ctx context.Context, profileID string, items []WorkExperience) (int, error)
}
