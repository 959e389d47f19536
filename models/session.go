package models

// Roles carried by an authenticated session.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Session is the authenticated identity for one request, built from the JWT
// claims at the middleware and passed down explicitly. StudentID is zero for
// admin sessions.
type Session struct {
	Role      string `json:"role"`
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Owns reports whether the session may read/mutate rows of the given student.
// Admins own everything; students only their own rows.
func (s Session) Owns(studentID int) bool {
	return s.IsAdmin() || (s.Role == RoleStudent && s.StudentID == studentID)
}
