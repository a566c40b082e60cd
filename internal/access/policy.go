package access

import (
	"context"

	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
)

const (
	MemberLoginPath        = "/login"
	AdminLoginPath         = "/admin/login"
	AdminHomePath          = "/admin/home"
	SubscriptionCreatePath = "/subscription/create"
	SubscriptionEditPath   = "/subscription/edit"
)

// Messages shown on the page a denied request is redirected to.
const (
	InvalidAccessMessage        = "不正なアクセスです。"
	LoginRequiredMessage        = "ログインしてください。"
	SubscriptionRequiredMessage = "この機能を利用するには有料プランへの登録が必要です。"
	AlreadySubscribedMessage    = "すでに有料プランに登録済みです。"
)

// Namespace is the authentication namespace a route belongs to.
type Namespace int

const (
	NamespaceGuest Namespace = iota // public routes; admins are bounced to their home
	NamespaceMember
	NamespaceAdmin
)

// SubscriptionRule says what the route expects from the gate.
type SubscriptionRule int

const (
	SubscriptionAny SubscriptionRule = iota
	SubscriptionRequired
	SubscriptionForbidden
)

type Reason string

const (
	ReasonAllowed           Reason = "allowed"
	ReasonUnauthenticated   Reason = "unauthenticated"
	ReasonWrongRole         Reason = "wrong_role"
	ReasonNotOwner          Reason = "not_owner"
	ReasonNotSubscribed     Reason = "not_subscribed"
	ReasonAlreadySubscribed Reason = "already_subscribed"
)

// Ownership names the owner of the record the request targets and where a
// non-owner is sent back to.
type Ownership struct {
	OwnerID   uint32
	IndexPath string
}

// Request is everything a decision depends on.
type Request struct {
	Namespace    Namespace
	Principal    sharedContext.Principal
	Ownership    *Ownership
	Subscription SubscriptionRule
}

// Decision is the outcome. A denied decision always carries a redirect target.
type Decision struct {
	Allowed    bool
	Reason     Reason
	RedirectTo string
	Message    string
}

// SubscriptionChecker is the live subscription gate.
type SubscriptionChecker interface {
	IsActive(ctx context.Context, memberID uint32) (bool, error)
}

var allowed = Decision{Allowed: true, Reason: ReasonAllowed}

// Evaluate applies the rules in order and stops at the first denial:
// authentication, role separation, ownership, subscription.
// The checker is consulted only when the first three pass.
func Evaluate(ctx context.Context, req Request, checker SubscriptionChecker) (Decision, error) {
	p := req.Principal

	switch req.Namespace {
	case NamespaceMember:
		if p.IsGuest() {
			return deny(ReasonUnauthenticated, MemberLoginPath, LoginRequiredMessage), nil
		}
		if !p.IsMember() {
			return deny(ReasonWrongRole, MemberLoginPath, ""), nil
		}
	case NamespaceAdmin:
		if p.IsGuest() {
			return deny(ReasonUnauthenticated, AdminLoginPath, LoginRequiredMessage), nil
		}
		if !p.IsAdmin() {
			return deny(ReasonWrongRole, AdminLoginPath, ""), nil
		}
	case NamespaceGuest:
		if p.IsAdmin() {
			return deny(ReasonWrongRole, AdminHomePath, ""), nil
		}
	}

	if req.Ownership != nil && !IsOwner(p, req.Ownership.OwnerID) {
		return deny(ReasonNotOwner, req.Ownership.IndexPath, InvalidAccessMessage), nil
	}

	if req.Subscription == SubscriptionAny || !p.IsMember() {
		return allowed, nil
	}

	active, err := checker.IsActive(ctx, p.ID)
	if err != nil {
		return Decision{}, err
	}

	switch {
	case req.Subscription == SubscriptionRequired && !active:
		return deny(ReasonNotSubscribed, SubscriptionCreatePath, SubscriptionRequiredMessage), nil
	case req.Subscription == SubscriptionForbidden && active:
		return deny(ReasonAlreadySubscribed, SubscriptionEditPath, AlreadySubscribedMessage), nil
	}
	return allowed, nil
}

// IsOwner reports whether p is the member that owns a record.
func IsOwner(p sharedContext.Principal, ownerID uint32) bool {
	return p.IsMember() && ownerID != 0 && p.ID == ownerID
}

// CheckOwner returns ErrNotOwner unless p owns the record.
func CheckOwner(p sharedContext.Principal, ownerID uint32) error {
	if !IsOwner(p, ownerID) {
		return ErrNotOwner
	}
	return nil
}

func deny(reason Reason, to, message string) Decision {
	return Decision{Reason: reason, RedirectTo: to, Message: message}
}
