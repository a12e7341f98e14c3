package models

import "time"

// Result records one attempt of a user at an assessment.
type Result struct {
	ID           string
	AssessmentID *string
	UserID       *string
	Score        int
	AttemptDate  time.Time
}
