package controller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"comicshelf/database/model"
	"comicshelf/logger"
	"comicshelf/web/service"
	"comicshelf/web/session"

	"github.com/gin-gonic/gin"
)

// AddComicForm carries the "add to collection" submission from the scan
// result card.
type AddComicForm struct {
	Isbn          string `form:"add_isbn"`
	Title         string `form:"add_title"`
	Authors       string `form:"add_authors"`
	Publisher     string `form:"add_publisher"`
	PublishedDate string `form:"add_published_date"`
	CoverImage    string `form:"add_cover_image"`
	InfoLink      string `form:"add_info_link"`
}

// IndexController handles the home route: barcode scanning and adding
// scanned books to the collection.
type IndexController struct {
	BaseController

	scannerService service.ScannerService
	comicService   service.ComicService
	catalogService *service.CatalogService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{
		catalogService: service.NewCatalogService(),
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.POST("/", a.indexPost)
}

func (a *IndexController) index(c *gin.Context) {
	a.render(c, nil, "")
}

// indexPost dispatches the two home-page actions: an image upload to scan,
// or an "add to collection" form submission.
func (a *IndexController) indexPost(c *gin.Context) {
	if file, err := c.FormFile("image"); err == nil && file.Filename != "" {
		a.scan(c, file)
		return
	}

	if c.PostForm("add_isbn") != "" {
		a.add(c)
		return
	}

	a.render(c, nil, "")
}

// scan stages the uploaded image, extracts an ISBN barcode and looks up the
// catalog metadata for it.
func (a *IndexController) scan(c *gin.Context, file *multipart.FileHeader) {
	stagePath, err := a.scannerService.StagePath(file.Filename)
	if err != nil {
		logger.Warning("stage upload err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if err := c.SaveUploadedFile(file, stagePath); err != nil {
		logger.Warning("save upload err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	defer a.scannerService.Discard(stagePath)

	isbn, err := a.scannerService.DetectISBN(stagePath)
	if errors.Is(err, service.ErrNoBarcode) {
		a.render(c, nil, "No barcode detected in the image")
		return
	} else if err != nil {
		logger.Warning("detect isbn err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	record, err := a.catalogService.Lookup(isbn)
	if errors.Is(err, service.ErrBookNotFound) {
		a.render(c, nil, fmt.Sprintf("Book with ISBN %s not found", isbn))
		return
	} else if err != nil {
		logger.Warning("catalog lookup err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	a.render(c, record, "")
}

// add persists a scanned book into the session user's collection.
func (a *IndexController) add(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user == nil {
		flash(c, "Please log in to add comics to your collection.")
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.RequestURI))
		return
	}

	var form AddComicForm
	if err := c.ShouldBind(&form); err != nil {
		a.render(c, nil, "Invalid form data.")
		return
	}

	comic := &model.Comic{
		Isbn:          form.Isbn,
		Title:         form.Title,
		Authors:       form.Authors,
		Publisher:     form.Publisher,
		PublishedDate: form.PublishedDate,
		CoverImage:    form.CoverImage,
		InfoLink:      form.InfoLink,
	}

	err := a.comicService.AddComic(comic, user.Id)
	switch {
	case errors.Is(err, service.ErrDuplicateComic):
		a.render(c, nil, "Comic already exists in your collection.")
	case err != nil:
		logger.Warning("add comic err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	default:
		a.render(c, nil, "Comic added to your collection!")
	}
}

func (a *IndexController) render(c *gin.Context, scanned *service.BookRecord, message string) {
	html(c, "index.html", "Scan a comic", gin.H{
		"scanned_comic": scanned,
		"message":       message,
		"login_user":    session.GetLoginUser(c),
	})
}
