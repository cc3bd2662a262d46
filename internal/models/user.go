package models

import (
	"time"
)

type User struct {
	Mobile    string    `json:"mobile" dynamodbav:"mobile"`
	FirstName string    `json:"first_name,omitempty" dynamodbav:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty" dynamodbav:"last_name,omitempty"`
	Verified  bool      `json:"verified" dynamodbav:"verified"`
	Active    bool      `json:"active" dynamodbav:"active"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

func (u *User) GetPK() string {
	return "USER!" + u.Mobile
}

func (u *User) GetSK() string {
	return "METADATA"
}

// AuthUser is the minimal identity embedded in session tokens and
// returned to clients. No other user fields cross this boundary.
type AuthUser struct {
	Mobile   string `json:"mobile"`
	Name     string `json:"name,omitempty"`
	Verified bool   `json:"verified"`
}

func (u *User) ToAuthUser() AuthUser {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	return AuthUser{
		Mobile:   u.Mobile,
		Name:     name,
		Verified: u.Verified,
	}
}
