package entity

import "time"

type Session struct {
	ID           string
	UserID       string
	RefreshToken string
	CreatedAt    string
	ExpiresAt    time.Time
	AuthProvider AuthProvider
}

type AuthProvider uint8

const (
	AuthProviderUnknown AuthProvider = 0
	AuthProviderLocal   AuthProvider = 1
	AuthProviderGoogle  AuthProvider = 2
)

var AuthProviderMap = map[AuthProvider]string{
	AuthProviderLocal:  "Local",
	AuthProviderGoogle: "Google",
}

func (a AuthProvider) String() string {
	return AuthProviderMap[a]
}

func (a AuthProvider) Value() uint8 {
	return uint8(a)
}
