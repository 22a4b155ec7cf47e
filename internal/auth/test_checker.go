package auth

import "context"

// TestChecker is a canned session checker for unit tests.
type TestChecker struct {
	Logged      bool
	ValidTokens map[string]bool
}

func NewTestChecker() *TestChecker {
	return &TestChecker{
		ValidTokens: map[string]bool{},
	}
}

func (c *TestChecker) IsLogged(_ context.Context) bool {
	return c.Logged
}

func (c *TestChecker) TokenValid(tokenValue string) bool {
	return c.ValidTokens[tokenValue]
}
