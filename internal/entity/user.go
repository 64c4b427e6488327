package entity

import "time"

type User struct {
	ID              string    `db:"id"`
	Email           string    `db:"email"`
	Name            string    `db:"name"`
	Password        string    `db:"password"`
	CompanyName     string    `db:"company_name"`
	ProfilePhotoURL string    `db:"profile_photo_url"`
	IsVerified      bool      `db:"is_verified"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type UserLoginData struct {
	ID    string
	Name  string
	Email string
}
