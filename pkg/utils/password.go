package utils

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// cost 10 keeps hashes compatible with accounts created by the previous backend
const passwordCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// DummyPasswordHash returns a valid hash at the normal cost. Comparing
// against it makes a login for an unknown account take as long as one
// with a wrong password.
func DummyPasswordHash() string {
	dummyHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("movie-review:no-such-account"), passwordCost)
		if err != nil {
			panic("utils: generate dummy password hash: " + err.Error())
		}
		dummyHash = string(hash)
	})
	return dummyHash
}
