package role

type Role int

const (
	Employee Role = iota // signs terms addressed to them
	Admin                // drafts, sends, cancels terms and manages equipment
)

func (r Role) String() string {
	switch r {
	case Admin:
		return "admin"
	default:
		return "employee"
	}
}

// Parse accepts the names produced by String.
func Parse(s string) (Role, bool) {
	switch s {
	case "admin":
		return Admin, true
	case "employee":
		return Employee, true
	}
	return Employee, false
}
