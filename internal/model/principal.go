package model

import (
	"fmt"
	"maps"
)

// ClaimEmail is the claim that carries the principal's email.
const ClaimEmail = "email"

// reservedClaims are set or validated by the token manager and cannot be supplied by callers.
var reservedClaims = []string{"exp", "iat", "nbf"}

// Principal is the identity recovered from a verified token. It is never persisted.
type Principal struct {
	Email string
	// Claims holds caller-supplied fields other than email. Nil when there are none.
	Claims map[string]any
}

// AsMap flattens the principal into a single claim set.
func (p Principal) AsMap() map[string]any {
	m := make(map[string]any, len(p.Claims)+1)
	maps.Copy(m, p.Claims)
	m[ClaimEmail] = p.Email
	return m
}

// ReservedClaim returns the first reserved claim name the principal carries.
func (p Principal) ReservedClaim() (string, bool) {
	for _, name := range reservedClaims {
		if _, ok := p.Claims[name]; ok {
			return name, true
		}
	}
	return "", false
}

// PrincipalFromMap builds a principal out of a flat claim set.
func PrincipalFromMap(m map[string]any) (Principal, error) {
	var p Principal
	for k, v := range m {
		if k == ClaimEmail {
			email, ok := v.(string)
			if !ok {
				return Principal{}, fmt.Errorf("claim %q is %T, want string", ClaimEmail, v)
			}
			p.Email = email
			continue
		}
		if p.Claims == nil {
			p.Claims = make(map[string]any)
		}
		p.Claims[k] = v
	}
	return p, nil
}
