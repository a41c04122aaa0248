package models

type User struct {
	Base
	Email        *string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string  `json:"-"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	DiscordID    *string `gorm:"uniqueIndex" json:"discord_id,omitempty"`
	Avatar       string  `json:"avatar,omitempty"`
}
