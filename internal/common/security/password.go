package security

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword derives an irreversible bcrypt hash for storage. The raw
// password never leaves this package boundary once hashed.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
