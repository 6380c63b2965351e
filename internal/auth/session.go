package auth

// Session is a read-only snapshot of who the visitor is.
type Session struct {
	Authenticated bool
	Username      string
	Role          Role
}

func (s Session) IsAdmin() bool {
	return s.Authenticated && s.Role == RoleAdmin
}
