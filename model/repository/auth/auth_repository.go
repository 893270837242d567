package auth

import (
	"gorm.io/gorm"

	entity "tillpoint/model/entity"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindActiveToken returns a non-revoked API token by its token string.
func (r *AuthRepository) FindActiveToken(token string) (*entity.ApiToken, error) {
	var t entity.ApiToken
	err := r.db.Where("token = ? AND revoked = 0", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
