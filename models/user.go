package models

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// User is an administrative account. Password holds a bcrypt hash and is
// never serialized.
type User struct {
	ID       string `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Username string `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	Password string `json:"-" db:"password" gorm:"type:text;not null"`
}

// HashPassword returns the bcrypt hash stored in User.Password
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash
func (u User) CheckPassword(plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain))
	return err == nil
}

// UserFromInsert validates in and builds the row to store, hashing the password
func UserFromInsert(id string, in NewUser) (*User, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("invalid %T: password longer than 72 bytes", in)
	}
	if err != nil {
		return nil, err
	}
	return &User{ID: id, Username: in.Username, Password: hash}, nil
}
