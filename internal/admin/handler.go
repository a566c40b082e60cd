package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/auth"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

type AdminHandler struct {
	adminService *AdminService
}

func NewAdminHandler(adminService *AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var request auth.LoginRequest
	if !handler.Bind(c, &request) {
		return
	}

	response, err := h.adminService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) Home(c *gin.Context) {
	response, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) MemberIndex(c *gin.Context) {
	var request MemberSearchRequest
	if !handler.BindQuery(c, &request) {
		return
	}

	page := pagination.FromQuery(c, pagination.DefaultPerPage)
	response, err := h.adminService.Members(c.Request.Context(), request.Keyword, page)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) MemberShow(c *gin.Context) {
	ID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.adminService.Member(c.Request.Context(), ID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}
