package domain

// Session identifies the actor behind a request. Built once per request by
// the auth middleware: identity from the verified token, role from a single
// user lookup. Passed explicitly into services instead of living in any
// ambient state.
type Session struct {
	Email string
	Role  string
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

func (s *Session) IsChef() bool {
	return s != nil && s.Role == RoleChef
}
