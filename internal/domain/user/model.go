package user

// Role determines what a user may do in the workflow. Enforcement
// lives in the API layer; the core only carries the role.
type Role string

const (
	RoleRequestor        Role = "Requestor"
	RoleEstimator        Role = "Estimator"
	RoleInternalReviewer Role = "Internal Reviewer"
	RoleExternalReviewer Role = "External Reviewer"
	RoleApprover         Role = "Approver"
	RoleAdmin            Role = "Admin"
)

// User is a directory entry used for display-name resolution and
// actor identity on status changes.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// Directory indexes users by id for name lookups.
type Directory map[string]User

// NewDirectory builds a Directory from a user list.
func NewDirectory(users []User) Directory {
	dir := make(Directory, len(users))
	for _, u := range users {
		dir[u.ID] = u
	}
	return dir
}

// NameOr returns the display name for id, or fallback when the user is
// missing. A lookup miss is never an error.
func (d Directory) NameOr(id, fallback string) string {
	if u, ok := d[id]; ok && u.Name != "" {
		return u.Name
	}
	return fallback
}
