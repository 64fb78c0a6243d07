package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSON은 에러를 `{ "error": ... }` 형태의 JSON 응답으로 내려보냅니다.
// AppError는 코드에 매핑된 상태 코드를, 그 외 에러는 500을 사용합니다.
func JSON(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return c.JSON(ToHTTPStatus(appErr.Code()), map[string]string{"error": appErr.Error()})
	}

	// Echo 에러인 경우 상태 코드를 유지
	if echoErr, ok := err.(*echo.HTTPError); ok {
		msg := "Internal server error"
		if m, ok := echoErr.Message.(string); ok {
			msg = m
		}
		return c.JSON(echoErr.Code, map[string]string{"error": msg})
	}

	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
