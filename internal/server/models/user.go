package models

import "time"

type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
