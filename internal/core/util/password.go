package util

import "golang.org/x/crypto/bcrypt"

func HashPassword(password string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

// CheckPassword returns bcrypt.ErrMismatchedHashAndPassword on a wrong password.
func CheckPassword(password, encrypted string) error {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
