// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the core account entity. Passwords are stored as bcrypt hashes and
// Tokens holds every bearer token that is still accepted for this account;
// removing a token there invalidates the session even though the token's
// signature remains valid.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Age       int                `bson:"age"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Tokens    []string           `bson:"tokens"`
	Avatar    []byte             `bson:"avatar,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// PublicView is the serializable projection of a User that is safe to return
// to clients. Password, tokens and the avatar blob are never exposed.
type PublicView struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() PublicView {
	return PublicView{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Age:       u.Age,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HasToken reports whether the given bearer token is still live for this user.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}

	return false
}

// RemoveToken drops exactly one token from the live-token list. Other
// sessions keep their tokens.
func (u *User) RemoveToken(token string) {
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
}
