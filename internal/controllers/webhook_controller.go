package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"tandem-server/configs"
	"tandem-server/internal/logics"

	"github.com/labstack/echo/v4"
	svix "github.com/svix/svix-webhooks/go"
	"go.uber.org/zap"
)

// WebhookController 외부 ID 공급자의 계정 이벤트를 수신해 로컬 사용자와
// 메시징 디렉터리에 반영합니다.
type WebhookController struct {
	BaseController
	userService *logics.UserService
	directory   logics.UserDirectory
}

// NewWebhookController 새로운 WebhookController 인스턴스 생성
func NewWebhookController(userService *logics.UserService, directory logics.UserDirectory) *WebhookController {
	return &WebhookController{
		userService: userService,
		directory:   directory,
	}
}

// HandleProviderWebhook svix 서명을 검증한 뒤 user.created / user.updated
// 이벤트를 로컬 사용자 테이블과 Stream 디렉터리에 반영합니다. 그 외
// 이벤트 타입은 수신만 하고 무시합니다.
// POST /api/webhooks
func (wc *WebhookController) HandleProviderWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return wc.BadRequest(c, "Failed to read request body")
	}

	wh, err := svix.NewWebhook(configs.Configs.Secrets.WebhookSecret)
	if err != nil {
		configs.Logger.Error("Invalid webhook secret configuration", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Webhook verification unavailable"})
	}
	if err := wh.Verify(payload, c.Request().Header); err != nil {
		return wc.BadRequest(c, "Invalid webhook signature")
	}

	var event logics.ProviderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return wc.BadRequest(c, "Invalid JSON payload")
	}

	switch event.Type {
	case logics.EventUserCreated, logics.EventUserUpdated:
		user, err := wc.userService.UpsertFromProvider(event.Data, payload)
		if err != nil {
			return wc.RespondError(c, err)
		}

		// 디렉터리 동기화 실패는 웹훅 재시도에 맡기지 않고 로그만 남깁니다
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := wc.directory.UpsertUser(ctx, user); err != nil {
			configs.Logger.Warn("Failed to sync user to messaging directory",
				zap.String("userId", user.ID),
				zap.Error(err),
			)
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "User synced"})
	default:
		return c.JSON(http.StatusOK, map[string]string{"message": "Ignored event"})
	}
}

// HandleClerkWebhook 서명 검증 없이 JSON 본문만 파싱하는 동기화 변형.
// 로컬 사용자 테이블만 갱신하고 디렉터리는 건드리지 않습니다.
// POST /api/webhooks/clerk
func (wc *WebhookController) HandleClerkWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return wc.BadRequest(c, "Failed to read request body")
	}

	var event logics.ProviderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return wc.BadRequest(c, "Invalid JSON payload")
	}

	switch event.Type {
	case logics.EventUserCreated, logics.EventUserUpdated:
		if _, err := wc.userService.UpsertFromProvider(event.Data, payload); err != nil {
			return wc.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "User synced"})
	default:
		return c.JSON(http.StatusOK, map[string]string{"message": "Ignored event"})
	}
}
