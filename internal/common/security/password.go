package security

import "golang.org/x/crypto/bcrypt"

// PasswordComparer abstracts how credentials are stored and checked, so
// cleartext parity and bcrypt hashing sit behind the same contract.
type PasswordComparer interface {
	Store(password string) (string, error)
	Compare(stored, presented string) bool
}

// PlainComparer keeps passwords as-is and compares by exact equality.
// No normalization, no hashing.
type PlainComparer struct{}

func (PlainComparer) Store(password string) (string, error) {
	return password, nil
}

func (PlainComparer) Compare(stored, presented string) bool {
	return stored == presented
}

// BcryptComparer hashes passwords with bcrypt at the default cost.
type BcryptComparer struct{}

func (BcryptComparer) Store(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (BcryptComparer) Compare(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}
