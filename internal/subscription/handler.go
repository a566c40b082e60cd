package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/access"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
)

const (
	subscribedMessage    = "有料プランへの登録が完了しました。"
	paymentUpdateMessage = "お支払い方法を変更しました。"
	cancelledMessage     = "有料プランを解約しました。"
	failureMessage       = "処理に失敗しました。"
)

type SubscriptionHandler struct {
	gate  *Gate
	guard *access.Guard
	plan  string
}

func NewSubscriptionHandler(gate *Gate, guard *access.Guard, plan string) *SubscriptionHandler {
	return &SubscriptionHandler{
		gate:  gate,
		guard: guard,
		plan:  plan,
	}
}

// Create renders what the signup form needs.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	h.intent(c)
}

// Edit renders what the payment method form needs.
func (h *SubscriptionHandler) Edit(c *gin.Context) {
	h.intent(c)
}

func (h *SubscriptionHandler) intent(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}

	secret, err := h.gate.SetupIntent(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, IntentResponse{
		ClientSecret: secret,
		Plan:         h.plan,
		Flash:        handler.TakeFlash(c),
	})
}

func (h *SubscriptionHandler) Store(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}

	var request PaymentMethodRequest
	if !handler.Bind(c, &request) {
		return
	}

	if err := h.gate.Subscribe(c.Request.Context(), memberID, request.PaymentMethodID); err != nil {
		h.fail(c, err, access.SubscriptionCreatePath)
		return
	}

	handler.RedirectWithFlash(c, "/", subscribedMessage)
}

func (h *SubscriptionHandler) Update(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}

	var request PaymentMethodRequest
	if !handler.Bind(c, &request) {
		return
	}

	if err := h.gate.UpdatePaymentMethod(c.Request.Context(), memberID, request.PaymentMethodID); err != nil {
		h.fail(c, err, access.SubscriptionEditPath)
		return
	}

	handler.RedirectWithFlash(c, "/", paymentUpdateMessage)
}

func (h *SubscriptionHandler) Destroy(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}

	if err := h.gate.Cancel(c.Request.Context(), memberID); err != nil {
		h.fail(c, err, "/")
		return
	}

	handler.RedirectWithFlash(c, "/", cancelledMessage)
}

// fail reports a collaborator failure on a mutation: redirect with an error flash.
func (h *SubscriptionHandler) fail(c *gin.Context, err error, location string) {
	logger.FromContext(c.Request.Context()).Error("subscription 처리 실패", "error", err)
	c.Error(err)
	handler.RedirectWithError(c, location, failureMessage)
}
