// This file implements UserRepository.
package repository

import (
	"strings"

	"your_chores_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository backed by gorm.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "query user uuid=%s", uuid)
	}
	return &user, nil
}

func (r *userRepository) FindByUserName(userName string) (*model.UserInfo, error) {
	var user model.UserInfo
	normalized := strings.ToLower(userName)
	if err := r.db.First(&user, "normalized_user_name = ?", normalized).Error; err != nil {
		return nil, wrapDBErrorf(err, "query user name=%s", userName)
	}
	return &user, nil
}

func (r *userRepository) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	var users []model.UserInfo
	if len(uuids) == 0 {
		return users, nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "batch query users")
	}
	return users, nil
}

func (r *userRepository) SearchByUserName(fragment string) ([]model.UserInfo, error) {
	var users []model.UserInfo
	pattern := "%" + strings.ToLower(fragment) + "%"
	if err := r.db.Where("normalized_user_name LIKE ?", pattern).Find(&users).Error; err != nil {
		return nil, wrapDBErrorf(err, "search users name fragment=%s", fragment)
	}
	return users, nil
}

func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) Update(user *model.UserInfo) error {
	if err := r.db.Save(user).Error; err != nil {
		return wrapDBError(err, "update user")
	}
	return nil
}

// LockByUuid takes a FOR UPDATE lock on the user row. Concurrent
// transactions counting the same user's memberships serialize here,
// so the per-user room cap cannot be jointly exceeded.
func (r *userRepository) LockByUuid(uuid string) error {
	var user model.UserInfo
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "uuid = ?", uuid).Error; err != nil {
		return wrapDBErrorf(err, "lock user uuid=%s", uuid)
	}
	return nil
}
