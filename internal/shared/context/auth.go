package context

import (
	"time"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key holding the resolved Principal
const PrincipalKey = "principal"

type Kind int

const (
	KindNone Kind = iota
	KindMember
	KindAdmin
)

func (k Kind) String() string {
	switch k {
	case KindMember:
		return "member"
	case KindAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Principal is who the request is acting as. At most one of Member/Admin per request.
type Principal struct {
	Kind      Kind
	ID        uint32
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

func (p Principal) IsMember() bool { return p.Kind == KindMember }

func (p Principal) IsAdmin() bool { return p.Kind == KindAdmin }

func (p Principal) IsGuest() bool { return p.Kind == KindNone }

// SetPrincipal stores p on the gin context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(PrincipalKey, p)
}

// GetPrincipal returns the resolved principal, or a guest principal if none.
func GetPrincipal(c *gin.Context) Principal {
	if v, exists := c.Get(PrincipalKey); exists {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	return Principal{}
}

// GetMemberID returns the member id when the request acts as a Member.
func GetMemberID(c *gin.Context) (uint32, bool) {
	p := GetPrincipal(c)
	if !p.IsMember() {
		return 0, false
	}
	return p.ID, true
}
