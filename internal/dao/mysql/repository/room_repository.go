// This file implements RoomRepository.
package repository

import (
	"your_chores_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a RoomRepository backed by gorm.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) FindByID(id uint) (*model.Room, error) {
	var room model.Room
	if err := r.db.First(&room, "id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "query room id=%d", id)
	}
	return &room, nil
}

// LockByID fetches the room with a FOR UPDATE lock. All membership
// mutations of a room go through this, so concurrent capacity checks
// and inserts on the same room serialize.
func (r *roomRepository) LockByID(id uint) (*model.Room, error) {
	var room model.Room
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, "id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "lock room id=%d", id)
	}
	return &room, nil
}

func (r *roomRepository) FindByNormalizedName(name string) (*model.Room, error) {
	var room model.Room
	if err := r.db.First(&room, "normalized_name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "query room name=%s", name)
	}
	return &room, nil
}

func (r *roomRepository) SearchByName(fragment string) ([]model.Room, error) {
	var rooms []model.Room
	pattern := "%" + model.NormalizeRoomName(fragment) + "%"
	if err := r.db.Where("normalized_name LIKE ?", pattern).Find(&rooms).Error; err != nil {
		return nil, wrapDBErrorf(err, "search rooms name fragment=%s", fragment)
	}
	return rooms, nil
}

func (r *roomRepository) FindByIDs(ids []uint) ([]model.Room, error) {
	var rooms []model.Room
	if len(ids) == 0 {
		return rooms, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, wrapDBError(err, "batch query rooms")
	}
	return rooms, nil
}

func (r *roomRepository) Create(room *model.Room) error {
	if err := r.db.Create(room).Error; err != nil {
		return wrapDBError(err, "create room")
	}
	return nil
}

func (r *roomRepository) Update(room *model.Room) error {
	if err := r.db.Save(room).Error; err != nil {
		return wrapDBError(err, "update room")
	}
	return nil
}

// Delete removes the room permanently. Rooms have no independent life
// once the last membership is gone, so this is a hard delete.
func (r *roomRepository) Delete(id uint) error {
	if err := r.db.Unscoped().Delete(&model.Room{}, "id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "delete room id=%d", id)
	}
	return nil
}
