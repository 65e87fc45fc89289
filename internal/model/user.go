package model

import "time"

// User represents a registered user, keyed by username.
type User struct {
	Username    string    `json:"username" gorm:"primaryKey;size:50"`
	Password    string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed in JSON
	FirstName   string    `json:"first_name" gorm:"size:100;not null"`
	LastName    string    `json:"last_name" gorm:"size:100;not null"`
	Phone       string    `json:"phone" gorm:"size:30;not null"`
	JoinAt      time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// Profile is the public subset of a user embedded in message payloads.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Profile returns the non-secret projection of the user.
func (u *User) Profile() Profile {
	return Profile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
