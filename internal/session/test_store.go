package session

import "context"

// TestStore is an in-memory session store for unit tests.
type TestStore struct {
	StoredToken string
	StoredUser  []byte
}

func NewTestStore() *TestStore {
	return &TestStore{}
}

func (s *TestStore) SetToken(_ context.Context, token string) error {
	s.StoredToken = token
	return nil
}

func (s *TestStore) Token(_ context.Context) (string, bool) {
	if s.StoredToken == "" {
		return "", false
	}
	return s.StoredToken, true
}

func (s *TestStore) SetUser(_ context.Context, userJSON []byte) error {
	s.StoredUser = userJSON
	return nil
}

func (s *TestStore) User(_ context.Context) ([]byte, bool) {
	if len(s.StoredUser) == 0 {
		return nil, false
	}
	return s.StoredUser, true
}

func (s *TestStore) Clear(_ context.Context) error {
	s.StoredToken = ""
	s.StoredUser = nil
	return nil
}
