// Package user implements profile management.
package user

import (
	"strings"

	"go.uber.org/zap"

	"your_chores_server/internal/dao/mysql/repository"
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/dto/respond"
	"your_chores_server/pkg/errorx"
)

type userService struct {
	repos *repository.Repositories
}

// NewUserService creates the user service.
func NewUserService(repos *repository.Repositories) *userService {
	return &userService{repos: repos}
}

func (s *userService) GetUserInfo(callerUuid string) (*respond.UserInfoRespond, error) {
	userInfo, err := s.repos.User.FindByUuid(callerUuid)
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return nil, errorx.New(errorx.CodeUserNotExist, "The user does not exist")
		}
		zap.L().Error("find user", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.UserInfoRespond{
		UserUuid:  userInfo.Uuid,
		UserName:  userInfo.UserName,
		FirstName: userInfo.FirstName,
		LastName:  userInfo.LastName,
	}, nil
}

func (s *userService) ChangeName(callerUuid string, req request.ChangeNameRequest) error {
	userInfo, err := s.repos.User.FindByUuid(callerUuid)
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return errorx.New(errorx.CodeUserNotExist, "The user does not exist")
		}
		zap.L().Error("find user", zap.Error(err))
		return errorx.ErrServerBusy
	}
	userInfo.FirstName = strings.TrimSpace(req.FirstName)
	userInfo.LastName = strings.TrimSpace(req.LastName)
	if err := s.repos.User.Update(userInfo); err != nil {
		zap.L().Error("update user", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

func (s *userService) ChangePassword(callerUuid string, req request.ChangePasswordRequest) error {
	userInfo, err := s.repos.User.FindByUuid(callerUuid)
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return errorx.New(errorx.CodeUserNotExist, "The user does not exist")
		}
		zap.L().Error("find user", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if !userInfo.CheckPassword(req.OldPassword) {
		return errorx.New(errorx.CodeWrongLogin, "The old password is wrong")
	}
	userInfo.RawPassword = req.NewPassword
	if err := s.repos.User.Update(userInfo); err != nil {
		zap.L().Error("update password", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}
