package models

import "time"

// SemesterTerm enumerates the terms within an academic year.
type SemesterTerm string

const (
	TermSpring SemesterTerm = "SPRING"
	TermSummer SemesterTerm = "SUMMER"
	TermFall   SemesterTerm = "FALL"
)

// Semester identifies an academic semester (term + year).
type Semester struct {
	ID        string       `db:"id" json:"id"`
	Term      SemesterTerm `db:"term" json:"term"`
	Year      int          `db:"year" json:"year"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}
