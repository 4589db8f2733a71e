package hash

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	StorageBcrypt = "bcrypt"
	StoragePlain  = "plain"
)

// Hasher turns a submitted password into its stored form and checks a
// submitted password against a stored value.
type Hasher interface {
	Hash(password string) (string, error)
	Check(stored, password string) bool
}

func New(storage string) (Hasher, error) {
	switch storage {
	case StorageBcrypt, "":
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	case StoragePlain:
		return Plain{}, nil
	default:
		return nil, fmt.Errorf("unknown password storage %q", storage)
	}
}

type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func (b Bcrypt) Check(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// Plain stores passwords as submitted. It exists for databases imported
// from the legacy system and must not be used for new deployments.
type Plain struct{}

func (Plain) Hash(password string) (string, error) { return password, nil }

func (Plain) Check(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
