package entity

// DefaultRoleID is assigned to self-registered users.
const DefaultRoleID int64 = 1

// User represents the user model in the database
type User struct {
	Base
	Name         string    `gorm:"size:100;not null" json:"name"`
	Surname      string    `gorm:"size:100" json:"surname"`
	Login        string    `gorm:"size:255;uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Age          int       `json:"age"`
	RoleID       int64     `gorm:"not null;default:1" json:"role_id"`
	Accounts     []Account `gorm:"foreignKey:UserID" json:"accounts,omitempty"`
}
