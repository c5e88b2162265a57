package user

import (
	"crypto/subtle"
	"errors"

	"github.com/aulaedu/aula/core"
)

// Roles. The set is closed: adding one means revisiting every switch below.
type Role string

const (
	RoleStudent Role = "student"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

var Roles = []Role{RoleStudent, RoleTrainer, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

var errSecretMismatch = errors.New("secret mismatch")

// User is a registered identity. Secret is the mock plaintext credential; it is
// never serialized and is stripped from any session snapshot.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Secret string `json:"-"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// CheckSecret compares the mock credential in constant time.
func (u *User) CheckSecret(secret string) error {
	if subtle.ConstantTimeCompare([]byte(u.Secret), []byte(secret)) != 1 {
		return errSecretMismatch
	}
	return nil
}

// Sanitized returns a copy of the User with the credential stripped.
func (u User) Sanitized() User {
	u.Secret = ""
	return u
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsTrainer() bool { return u.Role == RoleTrainer }
func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Secret string `json:"secret" validate:"required,secretminlen,secretnospace,secrettoosim"`
	Role   Role   `json:"role" validate:"omitempty,role"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	if nu.Role == "" {
		nu.Role = RoleStudent
	}

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(nu.Email)
}
