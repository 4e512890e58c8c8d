package controller

import (
	"net/http"
	"strconv"

	"comicshelf/logger"
	"comicshelf/web/service"
	"comicshelf/web/session"

	"github.com/gin-gonic/gin"
)

// EditComicForm carries the editable fields of a collected comic. ISBN,
// published date and info link are immutable after creation.
type EditComicForm struct {
	ComicId    int    `form:"comic_id"`
	Title      string `form:"title"`
	Authors    string `form:"authors"`
	Publisher  string `form:"publisher"`
	CoverImage string `form:"cover_image"`
}

// CollectionController handles the authenticated collection routes: listing,
// deleting and editing comics.
type CollectionController struct {
	BaseController

	comicService service.ComicService
}

func NewCollectionController(g *gin.RouterGroup) *CollectionController {
	a := &CollectionController{}
	a.initRouter(g)
	return a
}

func (a *CollectionController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/")
	g.Use(a.checkLogin)

	g.GET("/collection", a.collection)
	g.POST("/delete/:comicId", a.delete)
	g.POST("/edit_comic", a.edit)
}

func (a *CollectionController) collection(c *gin.Context) {
	user := session.GetLoginUser(c)

	sort := c.DefaultQuery("sort", "latest")
	orderBy := ""
	if sort == "alphabetical" {
		orderBy = service.OrderByTitle
	}

	comics, err := a.comicService.GetAllComics(user.Id, orderBy)
	if err != nil {
		logger.Warning("list comics err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if isAjax(c) {
		jsonObj(c, comics, nil)
		return
	}

	html(c, "collection.html", "My collection", gin.H{
		"collection":   comics,
		"current_sort": sort,
		"login_user":   user,
	})
}

// delete removes a comic from the session user's own collection. A comic id
// owned by someone else is a no-op in the service layer.
func (a *CollectionController) delete(c *gin.Context) {
	user := session.GetLoginUser(c)

	comicId, err := strconv.Atoi(c.Param("comicId"))
	if err != nil {
		flash(c, "Invalid comic ID.")
		c.Redirect(http.StatusFound, "/collection")
		return
	}

	if err := a.comicService.DeleteComic(comicId, user.Id); err != nil {
		logger.Warning("delete comic err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if isAjax(c) {
		jsonMsg(c, "Comic deleted successfully.", nil)
		return
	}

	flash(c, "Comic deleted successfully.")
	c.Redirect(http.StatusFound, "/collection")
}

func (a *CollectionController) edit(c *gin.Context) {
	var form EditComicForm
	if err := c.ShouldBind(&form); err != nil || form.ComicId == 0 {
		flash(c, "Invalid comic ID.")
		c.Redirect(http.StatusFound, "/collection")
		return
	}

	err := a.comicService.UpdateComic(form.ComicId, form.Title, form.Authors, form.Publisher, form.CoverImage)
	if err != nil {
		logger.Warning("update comic err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if isAjax(c) {
		jsonMsg(c, "Comic updated successfully!", nil)
		return
	}

	flash(c, "Comic updated successfully!")
	c.Redirect(http.StatusFound, "/collection")
}
