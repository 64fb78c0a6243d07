package controllers

import (
	"net/http"

	"tandem-server/internal/middlewares"

	apperrors "tandem-server/pkg/errors"

	"github.com/labstack/echo/v4"
)

// BaseController 모든 컨트롤러에서 공통으로 사용되는 기능 제공
type BaseController struct{}

// CurrentUserID 컨텍스트에서 인증된 사용자 ID를 가져옵니다
func (bc *BaseController) CurrentUserID(c echo.Context) (string, error) {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return "", apperrors.Unauthenticated("Authentication required")
	}
	return userID, nil
}

// RespondError 서비스 에러를 `{ "error": ... }` JSON으로 변환합니다
func (bc *BaseController) RespondError(c echo.Context, err error) error {
	return apperrors.JSON(c, err)
}

// BadRequest 400 응답 헬퍼
func (bc *BaseController) BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

// Unauthorized 401 응답 헬퍼
func (bc *BaseController) Unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": message})
}
