// Package auth implements registration, login and the refresh-token
// session. Redis holds the active refresh-token id per user; issuing a
// new pair replaces it, so only the latest refresh token stays valid.
package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"your_chores_server/internal/dao/mysql/repository"
	"your_chores_server/internal/dao/redis"
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/dto/respond"
	"your_chores_server/internal/model"
	"your_chores_server/pkg/constants"
	"your_chores_server/pkg/errorx"
	"your_chores_server/pkg/util/jwt"
	"your_chores_server/pkg/util/random"
)

const refreshTokenKeyPrefix = "refresh_token:user:"

type authService struct {
	repos *repository.Repositories
	cache redis.CacheService
}

// NewAuthService creates the auth service.
func NewAuthService(repos *repository.Repositories, cache redis.CacheService) *authService {
	return &authService{repos: repos, cache: cache}
}

func (s *authService) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	userName := strings.TrimSpace(req.UserName)

	_, err := s.repos.User.FindByUserName(userName)
	if err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "This username is already taken")
	}
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		zap.L().Error("check username", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	newUser := model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(11),
		UserName:    userName,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		RawPassword: req.Password,
	}
	if err := s.repos.User.Create(&newUser); err != nil {
		zap.L().Error("create user", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("user registered", zap.String("uuid", newUser.Uuid))

	return s.issueLoginRespond(&newUser)
}

func (s *authService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	userInfo, err := s.repos.User.FindByUserName(strings.TrimSpace(req.UserName))
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return nil, errorx.New(errorx.CodeWrongLogin, "Wrong username or password")
		}
		zap.L().Error("find user", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !userInfo.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeWrongLogin, "Wrong username or password")
	}
	return s.issueLoginRespond(userInfo)
}

func (s *authService) Refresh(req request.RefreshRequest) (*respond.TokenPairRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil || claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthorized, "Invalid refresh token")
	}

	// single session: only the most recently issued refresh token counts
	activeID, err := s.cache.Get(context.Background(), refreshTokenKeyPrefix+claims.UserID)
	if err != nil {
		zap.L().Error("load session", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if activeID == "" || activeID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "The refresh token has been superseded")
	}

	accessToken, refreshToken, err := s.issueTokenPair(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &respond.TokenPairRespond{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) Logout(callerUuid string) error {
	if err := s.cache.Delete(context.Background(), refreshTokenKeyPrefix+callerUuid); err != nil {
		zap.L().Error("clear session", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// issueTokenPair generates both tokens and records the refresh-token id
// as the user's active session.
func (s *authService) issueTokenPair(userUuid string) (string, string, error) {
	accessToken, err := jwt.GenerateAccessToken(userUuid)
	if err != nil {
		zap.L().Error("generate access token", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(userUuid)
	if err != nil {
		zap.L().Error("generate refresh token", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	ttl := time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS) * time.Hour
	if err := s.cache.Set(context.Background(), refreshTokenKeyPrefix+userUuid, tokenID, ttl); err != nil {
		zap.L().Error("store session", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	return accessToken, refreshToken, nil
}

func (s *authService) issueLoginRespond(userInfo *model.UserInfo) (*respond.LoginRespond, error) {
	accessToken, refreshToken, err := s.issueTokenPair(userInfo.Uuid)
	if err != nil {
		return nil, err
	}
	return &respond.LoginRespond{
		UserUuid:     userInfo.Uuid,
		UserName:     userInfo.UserName,
		FirstName:    userInfo.FirstName,
		LastName:     userInfo.LastName,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
