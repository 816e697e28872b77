package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "kompetensiku_backend/internals/features/users/user/model"
)

// UserLite dipakai layar evaluasi untuk menampilkan nama/email
// tanpa membawa seluruh baris user.
type UserLite struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

type UserResolverService struct{}

func NewUserResolverService() *UserResolverService { return &UserResolverService{} }

// ResolveMany memetakan id → UserLite. ID yang tidak ditemukan
// tidak membuat error; cukup tidak ada di map (presentasi saja).
func (s *UserResolverService) ResolveMany(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]UserLite, error) {
	out := make(map[uuid.UUID]UserLite, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []userModel.UserModel
	if err := db.
		Select("id", "full_name", "email").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, u := range rows {
		out[u.ID] = UserLite{ID: u.ID, FullName: u.FullName, Email: u.Email}
	}
	return out, nil
}

// Exists memeriksa apakah user aktif dengan id tsb ada.
func (s *UserResolverService) Exists(db *gorm.DB, id uuid.UUID) (bool, error) {
	var cnt int64
	if err := db.Model(&userModel.UserModel{}).
		Where("id = ? AND is_active = TRUE", id).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
