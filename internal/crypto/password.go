package crypto

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor used when the user base was created.
// Changing it only affects newly hashed passwords.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt. The salt is random,
// so hashing the same password twice yields different outputs.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
