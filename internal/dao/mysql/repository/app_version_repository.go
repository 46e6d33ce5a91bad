// This file implements AppVersionRepository.
package repository

import (
	"your_chores_server/internal/model"

	"gorm.io/gorm"
)

type appVersionRepository struct {
	db *gorm.DB
}

// NewAppVersionRepository creates an AppVersionRepository backed by gorm.
func NewAppVersionRepository(db *gorm.DB) AppVersionRepository {
	return &appVersionRepository{db: db}
}

func (r *appVersionRepository) FindLatest() (*model.AppVersion, error) {
	var version model.AppVersion
	if err := r.db.Order("version DESC").First(&version).Error; err != nil {
		return nil, wrapDBError(err, "query latest app version")
	}
	return &version, nil
}

func (r *appVersionRepository) FindByVersion(versionNumber int) (*model.AppVersion, error) {
	var version model.AppVersion
	if err := r.db.Where("version = ?", versionNumber).First(&version).Error; err != nil {
		return nil, wrapDBErrorf(err, "query app version %d", versionNumber)
	}
	return &version, nil
}

func (r *appVersionRepository) Create(version *model.AppVersion) error {
	if err := r.db.Create(version).Error; err != nil {
		return wrapDBError(err, "create app version")
	}
	return nil
}

func (r *appVersionRepository) Update(version *model.AppVersion) error {
	if err := r.db.Save(version).Error; err != nil {
		return wrapDBError(err, "update app version")
	}
	return nil
}
