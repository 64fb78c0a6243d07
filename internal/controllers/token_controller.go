package controllers

import (
	"net/http"

	"tandem-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// TokenController 메시징 클라이언트용 사용자 토큰 발급
type TokenController struct {
	BaseController
	directory logics.UserDirectory
}

// NewTokenController 새로운 TokenController 인스턴스 생성
func NewTokenController(directory logics.UserDirectory) *TokenController {
	return &TokenController{directory: directory}
}

// CreateToken 로그인한 사용자의 Stream 토큰을 발급합니다. 채팅/영상
// 클라이언트가 채널에 접속할 때 사용합니다.
// POST /api/token
func (tc *TokenController) CreateToken(c echo.Context) error {
	userID, err := tc.CurrentUserID(c)
	if err != nil {
		return tc.RespondError(c, err)
	}

	token, err := tc.directory.CreateUserToken(userID)
	if err != nil {
		return tc.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token":  token,
		"userId": userID,
	})
}
