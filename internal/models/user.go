package models

import "time"

// User is the authenticated identity.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Login     string    `json:"login"`
	Age       int       `json:"age"`
	RoleID    int64     `json:"roleId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName joins name and surname for display.
func (u User) FullName() string {
	switch {
	case u.Name == "":
		return u.Surname
	case u.Surname == "":
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// Credentials are what login sends.
type Credentials struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration carries the fields needed to create a user.
type Registration struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

// ProfileUpdate carries mutable user fields. An empty Password keeps the current one.
type ProfileUpdate struct {
	Name     string `json:"name" validate:"required,max=100"`
	Surname  string `json:"surname" validate:"max=100"`
	Login    string `json:"login" validate:"required,max=255"`
	Password string `json:"password,omitempty"`
	Age      int    `json:"age" validate:"gte=0,lte=150"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token string
	User  User
}
