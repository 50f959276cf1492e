package model

// TokenManager issues and verifies signed, time-bounded principal assertions.
type TokenManager interface {
	Issue(principal Principal) (string, error)
	Verify(token string) (Principal, error)
}
