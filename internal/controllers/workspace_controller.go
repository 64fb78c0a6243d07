package controllers

import (
	"net/http"

	"tandem-server/configs"
	"tandem-server/internal/cache"
	"tandem-server/internal/logics"
	"tandem-server/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InvitationMailer delivers workspace invitation emails.
// *utils.EmailService is the production implementation.
type InvitationMailer interface {
	SendInvitationEmail(to, workspaceName, inviterName, inviteURL string) error
}

// WorkspaceController 워크스페이스 관련 HTTP 요청 처리
type WorkspaceController struct {
	BaseController
	workspaceService  *logics.WorkspaceService
	membershipService *logics.MembershipService
	invitationService *logics.InvitationService
	userService       *logics.UserService
	mailer            InvitationMailer
}

// NewWorkspaceController 새로운 WorkspaceController 인스턴스 생성
func NewWorkspaceController(
	workspaceService *logics.WorkspaceService,
	membershipService *logics.MembershipService,
	invitationService *logics.InvitationService,
	userService *logics.UserService,
	mailer InvitationMailer,
) *WorkspaceController {
	return &WorkspaceController{
		workspaceService:  workspaceService,
		membershipService: membershipService,
		invitationService: invitationService,
		userService:       userService,
		mailer:            mailer,
	}
}

type bootstrapRequest struct {
	WorkspaceName string   `json:"workspaceName" validate:"required,min=2"`
	ChannelName   string   `json:"channelName" validate:"required,min=1,max=80"`
	ImageURL      string   `json:"imageUrl" validate:"omitempty,url"`
	Emails        []string `json:"emails" validate:"required,min=1,dive,required,email"`
}

// CreateWorkspace 워크스페이스 부트스트랩: 워크스페이스 + 기본 채널 +
// 소유자 멤버십 + 초대 일괄 생성을 하나의 트랜잭션으로 수행합니다.
// POST /api/workspaces/create
func (wc *WorkspaceController) CreateWorkspace(c echo.Context) error {
	userID, err := wc.CurrentUserID(c)
	if err != nil {
		return wc.RespondError(c, err)
	}

	var input bootstrapRequest
	if err := c.Bind(&input); err != nil {
		return wc.BadRequest(c, "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return wc.BadRequest(c, err.Error())
	}

	workspace, channel, invitations, err := wc.workspaceService.Bootstrap(logics.BootstrapInput{
		OwnerID:       userID,
		WorkspaceName: input.WorkspaceName,
		ChannelName:   input.ChannelName,
		ImageURL:      input.ImageURL,
		Emails:        input.Emails,
	})
	if err != nil {
		return wc.RespondError(c, err)
	}

	// 초대 메일은 커밋 이후 best-effort로 발송
	go wc.sendInvitationEmails(wc.inviterName(userID), workspace, invitations)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Workspace created successfully",
		"workspace": workspace,
		"channel":   channel,
	})
}

// ListWorkspaces 사용자가 속한 워크스페이스 목록 조회
// GET /api/workspaces
func (wc *WorkspaceController) ListWorkspaces(c echo.Context) error {
	userID, err := wc.CurrentUserID(c)
	if err != nil {
		return wc.RespondError(c, err)
	}

	workspaces, err := wc.workspaceService.ListUserWorkspaces(userID, "")
	if err != nil {
		return wc.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"workspaces": workspaces,
	})
}

// SearchWorkspaces 이름으로 워크스페이스를 검색합니다. 결과는 최대 20건이며
// 각 워크스페이스에 채널 미리보기(5건)와 멤버/채널 수가 포함됩니다.
// GET /api/workspaces/search?q=
func (wc *WorkspaceController) SearchWorkspaces(c echo.Context) error {
	if _, err := wc.CurrentUserID(c); err != nil {
		return wc.RespondError(c, err)
	}

	results, err := wc.workspaceService.SearchWorkspaces(c.QueryParam("q"))
	if err != nil {
		return wc.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"results": results,
	})
}

// workspacePayload is what GET /api/workspaces/:workspaceId returns and what
// the Redis snapshot cache stores.
type workspacePayload struct {
	Workspace       *models.Workspace   `json:"workspace"`
	OtherWorkspaces []*models.Workspace `json:"otherWorkspaces"`
}

// GetWorkspace 워크스페이스 상세(채널/멤버십/초대 포함)와 사용자의 다른
// 워크스페이스 목록을 조회합니다. 멤버만 접근 가능.
// GET /api/workspaces/:workspaceId
func (wc *WorkspaceController) GetWorkspace(c echo.Context) error {
	userID, err := wc.CurrentUserID(c)
	if err != nil {
		return wc.RespondError(c, err)
	}

	workspaceID := c.Param("workspaceId")
	if workspaceID == "" {
		return wc.BadRequest(c, "Workspace ID is required")
	}

	// 멤버십 확인은 캐시 조회보다 먼저 수행합니다
	if _, err := wc.membershipService.RequireMember(userID, workspaceID); err != nil {
		return wc.RespondError(c, err)
	}

	ctx := c.Request().Context()

	var payload workspacePayload
	if found, _ := cache.GetWorkspaceSnapshot(ctx, workspaceID, &payload.Workspace); !found {
		workspace, err := wc.workspaceService.GetWorkspace(workspaceID,
			"Channels", "Memberships", "Memberships.User", "Invitations")
		if err != nil {
			return wc.RespondError(c, err)
		}
		payload.Workspace = workspace

		if err := cache.SetWorkspaceSnapshot(ctx, workspaceID, workspace); err != nil {
			configs.Logger.Warn("Failed to cache workspace snapshot", zap.Error(err))
		}
	}

	otherWorkspaces, err := wc.workspaceService.ListUserWorkspaces(userID, workspaceID)
	if err != nil {
		return wc.RespondError(c, err)
	}
	payload.OtherWorkspaces = otherWorkspaces

	return c.JSON(http.StatusOK, payload)
}

type editWorkspaceRequest struct {
	Name    *string   `json:"name"`
	Image   *string   `json:"image"`
	Invites *[]string `json:"invites" validate:"omitempty,dive,required,email"`
}

// EditWorkspace 워크스페이스 부분 수정. invites 배열이 오면 대기 중인
// 초대 집합을 통째로 교체합니다(수락된 초대는 보존). 소유자만 가능.
// PATCH /api/workspaces/:workspaceId/edit
func (wc *WorkspaceController) EditWorkspace(c echo.Context) error {
	userID, err := wc.CurrentUserID(c)
	if err != nil {
		return wc.RespondError(c, err)
	}

	workspaceID := c.Param("workspaceId")
	if workspaceID == "" {
		return wc.BadRequest(c, "Workspace ID is required")
	}

	var input editWorkspaceRequest
	if err := c.Bind(&input); err != nil {
		return wc.BadRequest(c, "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return wc.BadRequest(c, err.Error())
	}
	if input.Name == nil && input.Image == nil && input.Invites == nil {
		return wc.BadRequest(c, "Invalid input")
	}

	workspace, err := wc.workspaceService.GetWorkspace(workspaceID)
	if err != nil {
		return wc.RespondError(c, err)
	}
	if workspace.OwnerID != userID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Unauthorized or workspace not found"})
	}

	updated, err := wc.workspaceService.UpdateWorkspace(workspaceID, models.WorkspaceUpdate{
		Name:  input.Name,
		Image: input.Image,
	})
	if err != nil {
		return wc.RespondError(c, err)
	}

	if input.Invites != nil {
		invitations, err := wc.invitationService.ReplacePending(workspaceID, userID, *input.Invites)
		if err != nil {
			return wc.RespondError(c, err)
		}
		go wc.sendInvitationEmails(wc.inviterName(userID), updated, invitations)
	}

	cache.InvalidateWorkspace(c.Request().Context(), workspaceID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Workspace updated successfully",
		"workspace": updated,
	})
}

// inviterName resolves the display name used in invitation emails.
func (wc *WorkspaceController) inviterName(inviterID string) string {
	inviter, err := wc.userService.GetUser(inviterID)
	if err != nil {
		return "A teammate"
	}
	return inviter.FirstName + " " + inviter.LastName
}

// sendInvitationEmails delivers invitation emails outside the request path.
// Delivery failures are logged, never surfaced to the caller.
func (wc *WorkspaceController) sendInvitationEmails(inviterName string, workspace *models.Workspace, invitations []*models.Invitation) {
	for _, invitation := range invitations {
		inviteURL := configs.Configs.Service.BaseURL + "/invite/" + invitation.Token
		if err := wc.mailer.SendInvitationEmail(invitation.Email, workspace.Name, inviterName, inviteURL); err != nil {
			configs.Logger.Warn("Failed to send invitation email",
				zap.String("email", invitation.Email),
				zap.String("workspaceId", workspace.ID),
				zap.Error(err),
			)
		}
	}
}
