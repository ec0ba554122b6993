package entity

// Session is the client-held identity persisted in cookies between page
// loads. Role comes from the login response, not from the username, and is
// passed explicitly into every handler that needs it.
type Session struct {
	Username string
	UserID   int64
	Role     string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
