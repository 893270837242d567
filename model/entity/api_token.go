package entity

import "time"

// ApiToken is a bearer token for the /api group when AUTH_TYPE=token.
type ApiToken struct {
	TokenID   uint      `gorm:"column:token_id;primaryKey;autoIncrement"`
	Label     string    `gorm:"column:label;type:varchar(64);not null"`
	Token     string    `gorm:"column:token;type:varchar(64);not null;uniqueIndex"`
	Revoked   uint16    `gorm:"column:revoked;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ApiToken) TableName() string {
	return "api_token"
}
