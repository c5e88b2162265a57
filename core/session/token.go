package session

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/aulaedu/aula/core"
	"github.com/aulaedu/aula/core/user"
)

// Claims represents the session token payload. The token is treated as opaque
// by everything else; nothing in this core verifies it beyond minting it.
type Claims struct {
	jwt.StandardClaims
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
	Role  user.Role `json:"role,omitempty"`
}

func GetUserClaims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    core.Conf.GetString("appName"),
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(core.Conf.GetDuration("sessionTokenDelta")).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:  usr.Name,
		Email: usr.Email,
		Role:  usr.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(core.Conf.GetString("secretKey")))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}
