package domain

// Role is the authorization role carried inside an issued token.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleAdmin
}
