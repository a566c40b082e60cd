package member

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/access"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
)

const (
	profilePath           = "/user"
	profileUpdatedMessage = "会員情報を編集しました。"
)

type MemberHandler struct {
	memberService *MemberService
	guard         *access.Guard
}

func NewMemberHandler(memberService *MemberService, guard *access.Guard) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		guard:         guard,
	}
}

func (h *MemberHandler) GetProfile(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.GetProfile(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}

	var request UpdateProfileRequest
	if !handler.Bind(c, &request) {
		return
	}

	if err := h.memberService.UpdateProfile(c.Request.Context(), memberID, &request); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, profilePath, profileUpdatedMessage)
}
