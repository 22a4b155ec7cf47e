package auth

import "context"

var _ Checker = (*Service)(nil)
var _ Checker = (*TestChecker)(nil)

// Checker is the shared session validity check. The route guard and the
// edge gate both go through it so the expiry logic cannot drift apart.
type Checker interface {
	IsLogged(ctx context.Context) bool
	TokenValid(tokenValue string) bool
}
