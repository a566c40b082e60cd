package access

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
)

// CollaboratorFailureMessage is shown when the subscription gate cannot answer.
const CollaboratorFailureMessage = "処理に失敗しました。時間をおいて再度お試しください。"

// Guard turns Evaluate into gin middleware.
type Guard struct {
	checker SubscriptionChecker
	metrics *metrics.Metrics
}

func NewGuard(checker SubscriptionChecker, m *metrics.Metrics) *Guard {
	return &Guard{checker: checker, metrics: m}
}

func (g *Guard) RequireMember() gin.HandlerFunc {
	return g.enforce(NamespaceMember, SubscriptionAny)
}

func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return g.enforce(NamespaceAdmin, SubscriptionAny)
}

// GuestOnly lets guests and members through and sends admins to their home.
func (g *Guard) GuestOnly() gin.HandlerFunc {
	return g.enforce(NamespaceGuest, SubscriptionAny)
}

// RequireSubscription implies RequireMember.
func (g *Guard) RequireSubscription() gin.HandlerFunc {
	return g.enforce(NamespaceMember, SubscriptionRequired)
}

// RequireNoSubscription implies RequireMember.
func (g *Guard) RequireNoSubscription() gin.HandlerFunc {
	return g.enforce(NamespaceMember, SubscriptionForbidden)
}

func (g *Guard) enforce(ns Namespace, rule SubscriptionRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := Request{
			Namespace:    ns,
			Principal:    sharedContext.GetPrincipal(c),
			Subscription: rule,
		}

		decision, err := Evaluate(c.Request.Context(), req, g.checker)
		if err != nil {
			logger.FromContext(c.Request.Context()).Error("subscription gate 조회 실패",
				"member_id", req.Principal.ID,
				"error", err,
			)
			c.Error(err)
			handler.RedirectWithError(c, "/", CollaboratorFailureMessage)
			return
		}

		if !decision.Allowed {
			g.Deny(c, decision)
			return
		}
		c.Next()
	}
}

// Deny redirects per the decision and aborts the chain.
func (g *Guard) Deny(c *gin.Context, d Decision) {
	g.metrics.AccessDenied(string(d.Reason))
	logger.FromContext(c.Request.Context()).Info("access denied",
		"reason", d.Reason,
		"redirect", d.RedirectTo,
		"path", c.Request.URL.Path,
	)
	if d.Message == "" {
		c.Redirect(http.StatusFound, d.RedirectTo)
		c.Abort()
		return
	}
	handler.RedirectWithError(c, d.RedirectTo, d.Message)
}

// DenyNotOwner answers the ownership denial for a handler that found the
// record belongs to someone else.
func (g *Guard) DenyNotOwner(c *gin.Context, indexPath string) {
	g.Deny(c, deny(ReasonNotOwner, indexPath, InvalidAccessMessage))
}

// RequireMemberID returns the acting member id, redirecting to the login page
// when the request is not a member one.
func (g *Guard) RequireMemberID(c *gin.Context) (uint32, bool) {
	id, ok := sharedContext.GetMemberID(c)
	if !ok {
		g.Deny(c, deny(ReasonUnauthenticated, MemberLoginPath, LoginRequiredMessage))
		return 0, false
	}
	return id, true
}
