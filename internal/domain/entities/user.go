package entities

// Role is one of the two mutually exclusive account types.
// Every protected view restricts access by this attribute.
type Role string

const (
	RoleGuru  Role = "guru"
	RoleMurid Role = "murid"
)

// Valid reports whether the role is one of the known account types.
func (r Role) Valid() bool {
	return r == RoleGuru || r == RoleMurid
}

// User represents an authenticated LMS account as returned by the backend.
type User struct {
	ID    int64  `json:"id"`
	Nama  string `json:"nama"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// RegisterRequest is the payload for POST /api/auth/register.
// Registration creates a pending murid account; a guru must verify it
// before the account is allowed to authenticate.
type RegisterRequest struct {
	Nama     string `json:"nama"`
	Kelas    string `json:"kelas"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
