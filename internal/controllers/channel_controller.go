package controllers

import (
	"net/http"

	"tandem-server/internal/cache"
	"tandem-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// ChannelController 채널 관련 HTTP 요청 처리
type ChannelController struct {
	BaseController
	channelService    *logics.ChannelService
	membershipService *logics.MembershipService
}

// NewChannelController 새로운 ChannelController 인스턴스 생성
func NewChannelController(
	channelService *logics.ChannelService,
	membershipService *logics.MembershipService,
) *ChannelController {
	return &ChannelController{
		channelService:    channelService,
		membershipService: membershipService,
	}
}

type createChannelRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=80"`
	Description string `json:"description" validate:"omitempty,max=250"`
}

// CreateChannel 워크스페이스에 새 채널 생성. 채널 이름은 워크스페이스
// 안에서 대소문자 구분 없이 유일해야 합니다.
// POST /api/workspaces/:workspaceId/channels/create
func (cc *ChannelController) CreateChannel(c echo.Context) error {
	userID, err := cc.CurrentUserID(c)
	if err != nil {
		return cc.RespondError(c, err)
	}

	workspaceID := c.Param("workspaceId")
	if workspaceID == "" {
		return cc.BadRequest(c, "Workspace ID is required")
	}

	var input createChannelRequest
	if err := c.Bind(&input); err != nil {
		return cc.BadRequest(c, "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return cc.BadRequest(c, err.Error())
	}

	if _, err := cc.membershipService.RequireMember(userID, workspaceID); err != nil {
		return cc.RespondError(c, err)
	}

	channel, err := cc.channelService.CreateChannel(workspaceID, input.Name, input.Description)
	if err != nil {
		return cc.RespondError(c, err)
	}

	cache.InvalidateWorkspace(c.Request().Context(), workspaceID)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Channel created successfully",
		"channel": channel,
	})
}

type editChannelRequest struct {
	ChannelID   string  `json:"channelId"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=80"`
	Description *string `json:"description" validate:"omitempty,max=250"`
}

// EditChannel 채널 이름/설명 부분 수정. 관리자만 가능하며, 채널은 경로의
// 워크스페이스에 속해 있어야 합니다.
// PATCH /api/workspaces/:workspaceId/channels/:channelId/edit
func (cc *ChannelController) EditChannel(c echo.Context) error {
	return cc.editChannel(c, c.Param("channelId"))
}

// EditChannelByBody channelId를 본문으로 받는 수정 변형
// PATCH /api/workspaces/:workspaceId/channels/edit
func (cc *ChannelController) EditChannelByBody(c echo.Context) error {
	return cc.editChannel(c, "")
}

func (cc *ChannelController) editChannel(c echo.Context, channelID string) error {
	userID, err := cc.CurrentUserID(c)
	if err != nil {
		return cc.RespondError(c, err)
	}

	workspaceID := c.Param("workspaceId")
	if workspaceID == "" {
		return cc.BadRequest(c, "Workspace ID is required")
	}

	var input editChannelRequest
	if err := c.Bind(&input); err != nil {
		return cc.BadRequest(c, "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return cc.BadRequest(c, err.Error())
	}

	if channelID == "" {
		channelID = input.ChannelID
	}
	if channelID == "" {
		return cc.BadRequest(c, "Channel ID is required")
	}

	if _, err := cc.membershipService.RequireAdmin(userID, workspaceID); err != nil {
		return cc.RespondError(c, err)
	}

	channel, err := cc.channelService.UpdateChannel(workspaceID, channelID, input.Name, input.Description)
	if err != nil {
		return cc.RespondError(c, err)
	}

	cache.InvalidateWorkspace(c.Request().Context(), workspaceID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Channel updated successfully",
		"channel": channel,
	})
}
