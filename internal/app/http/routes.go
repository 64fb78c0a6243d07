package httpEngine

import (
	"net/http"
	"tandem-server/configs"
	"tandem-server/internal/controllers"
	"tandem-server/internal/logics"
	"tandem-server/internal/middlewares"
	"tandem-server/internal/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterRoutes는 서버의 모든 라우트를 등록합니다.
func RegisterRoutes(e *echo.Echo) {
	// 기본 헬스 체크 엔드포인트 (JWT 미들웨어 없음)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, from Tandem Server!")
	})

	// 기본 서비스 초기화
	membershipService := logics.NewMembershipService()
	channelService := logics.NewChannelService()
	invitationService := logics.NewInvitationService(membershipService, channelService)
	workspaceService := logics.NewWorkspaceService(membershipService, channelService, invitationService)
	userService := logics.NewUserService()

	directoryService, err := logics.NewDirectoryService(
		configs.Configs.Messaging.ApiKey,
		configs.Configs.Messaging.ApiSecret,
	)
	if err != nil {
		configs.Logger.Fatal("Failed to initialize messaging directory", zap.Error(err))
	}

	emailService := utils.NewEmailService(
		configs.Configs.Email.SmtpHost,
		configs.Configs.Email.SmtpPort,
		configs.Configs.Email.SmtpUsername,
		configs.Configs.Email.SmtpPassword,
		configs.Configs.Email.FromAddress,
	)

	// 컨트롤러 초기화 - 필요한 서비스 주입
	workspaceController := controllers.NewWorkspaceController(workspaceService, membershipService, invitationService, userService, emailService)
	channelController := controllers.NewChannelController(channelService, membershipService)
	invitationController := controllers.NewInvitationController(invitationService)
	webhookController := controllers.NewWebhookController(userService, directoryService)
	tokenController := controllers.NewTokenController(directoryService)

	// 웹훅 엔드포인트 (JWT 미들웨어 없음, 서명으로 검증)
	e.POST("/api/webhooks", webhookController.HandleProviderWebhook)
	e.POST("/api/webhooks/clerk", webhookController.HandleClerkWebhook)

	api := e.Group("/api")
	api.Use(middlewares.JWTMiddleware)

	// 워크스페이스 관련 엔드포인트
	api.POST("/workspaces/create", workspaceController.CreateWorkspace)
	api.GET("/workspaces", workspaceController.ListWorkspaces)
	api.GET("/workspaces/search", workspaceController.SearchWorkspaces)
	api.GET("/workspaces/:workspaceId", workspaceController.GetWorkspace)
	api.PATCH("/workspaces/:workspaceId/edit", workspaceController.EditWorkspace)

	// 채널 관련 엔드포인트
	api.POST("/workspaces/:workspaceId/channels/create", channelController.CreateChannel)
	api.PATCH("/workspaces/:workspaceId/channels/:channelId/edit", channelController.EditChannel)
	api.PATCH("/workspaces/:workspaceId/channels/edit", channelController.EditChannelByBody)

	// 초대 관련 엔드포인트
	api.GET("/invitations", invitationController.ListInvitations)
	api.POST("/invitations/accept", invitationController.AcceptInvitation)

	// 메시징 토큰 엔드포인트
	api.POST("/token", tokenController.CreateToken)
}
