// This file implements ChoreRepository.
package repository

import (
	"your_chores_server/internal/model"

	"gorm.io/gorm"
)

type choreRepository struct {
	db *gorm.DB
}

// NewChoreRepository creates a ChoreRepository backed by gorm.
func NewChoreRepository(db *gorm.DB) ChoreRepository {
	return &choreRepository{db: db}
}

func (r *choreRepository) FindByRoomAndID(roomID uint, choreID uint) (*model.Chore, error) {
	var chore model.Chore
	if err := r.db.Where("room_id = ? AND id = ?", roomID, choreID).
		First(&chore).Error; err != nil {
		return nil, wrapDBErrorf(err, "query chore room_id=%d id=%d", roomID, choreID)
	}
	return &chore, nil
}

func (r *choreRepository) FindByRoomID(roomID uint) ([]model.Chore, error) {
	var chores []model.Chore
	if err := r.db.Where("room_id = ?", roomID).Find(&chores).Error; err != nil {
		return nil, wrapDBErrorf(err, "query chores room_id=%d", roomID)
	}
	return chores, nil
}

func (r *choreRepository) FindByRoomIDs(roomIDs []uint) ([]model.Chore, error) {
	var chores []model.Chore
	if len(roomIDs) == 0 {
		return chores, nil
	}
	if err := r.db.Where("room_id IN ?", roomIDs).Find(&chores).Error; err != nil {
		return nil, wrapDBError(err, "batch query chores")
	}
	return chores, nil
}

func (r *choreRepository) Create(chore *model.Chore) error {
	if err := r.db.Create(chore).Error; err != nil {
		return wrapDBError(err, "create chore")
	}
	return nil
}

func (r *choreRepository) Update(chore *model.Chore) error {
	if err := r.db.Save(chore).Error; err != nil {
		return wrapDBError(err, "update chore")
	}
	return nil
}

func (r *choreRepository) DeleteByRoomID(roomID uint) error {
	if err := r.db.Unscoped().
		Where("room_id = ?", roomID).
		Delete(&model.Chore{}).Error; err != nil {
		return wrapDBErrorf(err, "delete chores room_id=%d", roomID)
	}
	return nil
}
