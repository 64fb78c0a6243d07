package controllers

import (
	"net/http"

	"tandem-server/internal/cache"
	"tandem-server/internal/logics"
	"tandem-server/internal/middlewares"

	"github.com/labstack/echo/v4"
)

// InvitationController 초대 관련 HTTP 요청 처리
type InvitationController struct {
	BaseController
	invitationService *logics.InvitationService
}

// NewInvitationController 새로운 InvitationController 인스턴스 생성
func NewInvitationController(invitationService *logics.InvitationService) *InvitationController {
	return &InvitationController{invitationService: invitationService}
}

type acceptInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

// AcceptInvitation 초대 토큰 수락. 토큰이 가리키는 초대를 단 한 번만
// 소비하고(중복 수락은 409) 워크스페이스 멤버십을 생성합니다.
// POST /api/invitations/accept
func (ic *InvitationController) AcceptInvitation(c echo.Context) error {
	userID, err := ic.CurrentUserID(c)
	if err != nil {
		return ic.RespondError(c, err)
	}

	var input acceptInvitationRequest
	if err := c.Bind(&input); err != nil {
		return ic.BadRequest(c, "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return ic.BadRequest(c, "Invitation token is required")
	}

	result, err := ic.invitationService.Accept(input.Token, userID)
	if err != nil {
		return ic.RespondError(c, err)
	}

	cache.InvalidateWorkspace(c.Request().Context(), result.WorkspaceID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Invitation accepted",
		"workspaceId": result.WorkspaceID,
		"channelId":   result.ChannelID,
	})
}

// ListInvitations 로그인한 사용자의 이메일로 온 대기 중 초대 목록 조회
// GET /api/invitations
func (ic *InvitationController) ListInvitations(c echo.Context) error {
	if _, err := ic.CurrentUserID(c); err != nil {
		return ic.RespondError(c, err)
	}

	email, err := middlewares.GetEmailFromContext(c)
	if err != nil || email == "" {
		return ic.BadRequest(c, "Email claim is required")
	}

	invitations, err := ic.invitationService.ListPendingForEmail(email)
	if err != nil {
		return ic.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"invitations": invitations,
	})
}
