// Package controller provides the HTTP request handlers of comicshelf:
// barcode scanning, collection management and session authentication.
package controller

import (
	"net/http"
	"net/url"

	"comicshelf/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers.
type BaseController struct{}

// checkLogin guards authenticated routes. Browsers are redirected to the
// login page with the original destination retained in "next"; AJAX callers
// get a 401.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Please log in to continue.")
		} else {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.RequestURI))
		}
		c.Abort()
	} else {
		c.Next()
	}
}
