package models

import "fmt"

type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Grade       int    `json:"grade"`
	Description string `json:"description"`
	Lessons     int    `json:"lessons"`
	Enrolled    int    `json:"enrolled"`
}

// Courses is the persisted course catalog.
type Courses []Course

func (cs Courses) Validate() error {
	for _, c := range cs {
		if c.ID <= 0 {
			return fmt.Errorf("course id must be positive, got %d", c.ID)
		}
	}
	return nil
}

// NextID returns max(id)+1, or 1 for an empty catalog.
func (cs Courses) NextID() int64 {
	var max int64
	for _, c := range cs {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
