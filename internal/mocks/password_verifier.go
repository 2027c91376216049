package mocks

import "golang.org/x/crypto/bcrypt"

// MockPasswordVerifier is a fast stand-in for auth.BcryptVerifier. Hash
// prefixes "hashed:" and Compare accepts exactly the passwords Hash would
// produce, so a user registered through it can also log in.
type MockPasswordVerifier struct {
	// HashFn overrides Hash, e.g. to simulate a hashing failure.
	HashFn func(password string) (string, error)

	// Compared records the plaintext passed to each Compare call.
	Compared []string
}

// Hash implements auth.PasswordHasher.
func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier. A mismatch returns the same
// sentinel bcrypt does.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.Compared = append(m.Compared, password)
	if hashedPassword != "hashed:"+password {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return nil
}
