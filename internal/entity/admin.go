package entity

import (
	"database/sql"
	"time"
)

type Admin struct {
	ID          string         `db:"id"`
	Email       string         `db:"email"`
	Name        string         `db:"name"`
	Password    sql.NullString `db:"password"`
	Role        string         `db:"role"`
	InviteToken sql.NullString `db:"invite_token"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type AdminLoginData struct {
	ID    string
	Name  string
	Email string
	Role  string
}
