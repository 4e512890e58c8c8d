package controller

import (
	"errors"
	"net/http"
	"strings"

	"comicshelf/logger"
	"comicshelf/web/service"
	"comicshelf/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login and signup request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthController handles signup, login and logout.
type AuthController struct {
	BaseController

	userService service.UserService
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/signup", a.signup)
	g.POST("/signup", a.signupPost)
	g.GET("/login", a.login)
	g.POST("/login", a.loginPost)
	g.GET("/logout", a.checkLogin, a.logout)
}

func (a *AuthController) signup(c *gin.Context) {
	html(c, "signup.html", "Sign up", gin.H{"login_user": session.GetLoginUser(c)})
}

func (a *AuthController) signupPost(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil || form.Username == "" || form.Password == "" {
		html(c, "signup.html", "Sign up", gin.H{"message": "Username and password are required."})
		return
	}

	err := a.userService.CreateUser(form.Username, form.Password)
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		html(c, "signup.html", "Sign up", gin.H{"message": "Username already exists."})
	case err != nil:
		logger.Warning("create user err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	default:
		logger.Infof("new account %q created", form.Username)
		flash(c, "Account created successfully! Please log in.")
		c.Redirect(http.StatusFound, "/login")
	}
}

func (a *AuthController) login(c *gin.Context) {
	html(c, "login.html", "Log in", gin.H{
		"next":       c.Query("next"),
		"login_user": session.GetLoginUser(c),
	})
}

// loginPost authenticates the submitted credentials. Unknown username and
// wrong password produce the same message; neither the distinction nor the
// password itself reaches the logs.
func (a *AuthController) loginPost(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil || form.Username == "" || form.Password == "" {
		html(c, "login.html", "Log in", gin.H{
			"message": "Username and password are required.",
			"next":    c.PostForm("next"),
		})
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		html(c, "login.html", "Log in", gin.H{
			"message": "Invalid username or password.",
			"next":    c.PostForm("next"),
		})
		return
	}

	user.PasswordHash = ""
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("save session err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	logger.Infof("%s logged in from %s", user.Username, getRemoteIp(c))

	flash(c, "Welcome, "+user.Username+"!")
	c.Redirect(http.StatusFound, safeNext(c.PostForm("next")))
}

func (a *AuthController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Username)
	}
	if err := session.ClearLoginUser(c); err != nil {
		logger.Warning("clear session err:", err)
	}
	flash(c, "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}

// safeNext keeps post-login redirects on this site; anything absolute or
// schemeless-absolute falls back to the home page.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
