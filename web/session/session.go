package session

import (
	"encoding/gob"

	"comicshelf/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUser = "LOGIN_USER"

func init() {
	gob.Register(model.User{})
}

// SetLoginUser stores the authenticated user in the session. Callers blank
// the password hash first; only id and username travel in the cookie.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUser, *user)
	return s.Save()
}

func GetLoginUser(c *gin.Context) *model.User {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(model.User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// ClearLoginUser removes the authenticated user from the session. The
// session itself stays alive so queued flash messages still reach the next
// rendered page.
func ClearLoginUser(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUser)
	return s.Save()
}
