package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a valid bcrypt digest compared against on lookup misses so
// unknown identifiers cost roughly the same as wrong passwords.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// CompareDummy burns a bcrypt comparison when no principal matched the
// presented identifier. Always returns a mismatch.
func CompareDummy(plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
}
