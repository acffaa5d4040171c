package models

import "time"

type JudgeRole string

const (
	RoleJudge JudgeRole = "judge"
	RoleChief JudgeRole = "chief"
)

// Judge is an authenticated result-entry user of the administration layer.
type Judge struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         JudgeRole `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
