package models

// Course groups assessments under an instructor. MediaURL points at a blob
// stored through the file service.
type Course struct {
	ID           string
	Title        string
	Description  string
	InstructorID *string
	MediaURL     string
}
