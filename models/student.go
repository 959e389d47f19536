package models

import "time"

type Student struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	StudentNo    string     `json:"student_no"` // 학번 — login key, unique, compared as string
	Gender       string     `json:"gender"`     // 남|여
	Room         string     `json:"room"`
	Phone        string     `json:"phone"`
	ParentPhone  string     `json:"parent_phone"`
	Address      string     `json:"address"`
	MiddleSchool string     `json:"middle_school"`
	InDate       time.Time  `json:"in_date"`
	OutDate      *time.Time `json:"out_date,omitempty"` // nil until the student moves out
	Password     string     `json:"-"`
	Note         string     `json:"note"`
}
