package models

// Assessment is a quiz attached to a course. Questions carries the question
// set as an opaque JSON document authored by the frontend.
type Assessment struct {
	ID        string
	CourseID  *string
	Title     string
	Questions string
	MaxScore  int
}
