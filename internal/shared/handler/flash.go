package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	FlashMessageCookie = "flash_message"
	ErrorMessageCookie = "error_message"

	flashMaxAge = 60
)

// Flash is the one-shot message pair handed to the next page after a redirect.
type Flash struct {
	FlashMessage string `json:"flash_message,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// RedirectWithFlash answers 302 to location carrying a success message.
func RedirectWithFlash(c *gin.Context, location, message string) {
	if message != "" {
		c.SetCookie(FlashMessageCookie, message, flashMaxAge, "/", "", false, true)
	}
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

// RedirectWithError answers 302 to location carrying an error message.
func RedirectWithError(c *gin.Context, location, message string) {
	if message != "" {
		c.SetCookie(ErrorMessageCookie, message, flashMaxAge, "/", "", false, true)
	}
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

// TakeFlash reads the pending messages and expires the cookies.
func TakeFlash(c *gin.Context) Flash {
	var flash Flash
	if msg, err := c.Cookie(FlashMessageCookie); err == nil && msg != "" {
		flash.FlashMessage = msg
		c.SetCookie(FlashMessageCookie, "", -1, "/", "", false, true)
	}
	if msg, err := c.Cookie(ErrorMessageCookie); err == nil && msg != "" {
		flash.ErrorMessage = msg
		c.SetCookie(ErrorMessageCookie, "", -1, "/", "", false, true)
	}
	return flash
}

// Back returns the path of a same-host Referer, otherwise fallback.
func Back(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}
	if ref.Host == "" && (ref.Scheme != "" || ref.User != nil) {
		return fallback
	}
	back := ref.EscapedPath()
	if ref.RawQuery != "" {
		back += "?" + ref.RawQuery
	}
	return back
}
