// Package version reports the published client version.
package version

import (
	"go.uber.org/zap"

	"your_chores_server/internal/dao/mysql/repository"
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/dto/respond"
	"your_chores_server/internal/model"
	"your_chores_server/pkg/errorx"
)

type versionService struct {
	repos *repository.Repositories
}

// NewVersionService creates the version service.
func NewVersionService(repos *repository.Repositories) *versionService {
	return &versionService{repos: repos}
}

func (s *versionService) GetAppVersion() (*respond.AppVersionRespond, error) {
	latest, err := s.repos.AppVersion.FindLatest()
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return nil, errorx.New(errorx.CodeNotFound, "No app version has been published")
		}
		zap.L().Error("load app version", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := toRespond(latest)
	return &rsp, nil
}

func (s *versionService) PublishVersion(req request.PublishVersionRequest) (*respond.AppVersionRespond, error) {
	if req.LowestAllowedVersion > req.Version {
		return nil, errorx.New(errorx.CodeInvalidParam,
			"The lowest allowed version can't exceed the published version")
	}

	var saved *model.AppVersion
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		existing, err := tx.AppVersion.FindByVersion(req.Version)
		switch {
		case err == nil:
			// republishing a version number rewrites its row
			existing.LowestAllowedVersion = req.LowestAllowedVersion
			existing.Message = req.Message
			existing.DownloadURL = req.DownloadURL
			saved = existing
			return tx.AppVersion.Update(existing)
		case errorx.IsCode(err, errorx.CodeNotFound):
			saved = &model.AppVersion{
				Version:              req.Version,
				LowestAllowedVersion: req.LowestAllowedVersion,
				Message:              req.Message,
				DownloadURL:          req.DownloadURL,
			}
			return tx.AppVersion.Create(saved)
		default:
			return err
		}
	})
	if err != nil {
		zap.L().Error("publish app version", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := toRespond(saved)
	return &rsp, nil
}

func toRespond(v *model.AppVersion) respond.AppVersionRespond {
	return respond.AppVersionRespond{
		Version:              v.Version,
		LowestAllowedVersion: v.LowestAllowedVersion,
		Message:              v.Message,
		DownloadURL:          v.DownloadURL,
	}
}
