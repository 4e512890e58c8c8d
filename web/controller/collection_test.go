package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"comicshelf/database/model"
	"comicshelf/web/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// sessionCookie returns the freshest session cookie from a response; each
// session save appends a Set-Cookie header and the last one is
// authoritative.
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	var found *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "comicshelf" {
			found = ck
		}
	}
	return found
}

func loginAs(t *testing.T, engine *gin.Engine, username, password string) *http.Cookie {
	t.Helper()
	w := postForm(engine, "/login", url.Values{
		"username": {username}, "password": {password},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	ck := sessionCookie(w)
	assert.NotNil(t, ck)
	return ck
}

func ajaxRequest(engine *gin.Engine, method, path, body string, ck *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if ck != nil {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCollectionAjaxReturnsJson(t *testing.T) {
	setup()
	defer teardown()

	userService := service.UserService{}
	comicService := service.ComicService{}
	assert.NoError(t, userService.CreateUser("alice", "pw1"))
	aliceId, _ := userService.GetUserId("alice")
	assert.NoError(t, comicService.AddComic(&model.Comic{Isbn: "111", Title: "Watchmen"}, aliceId))

	engine := testRouter()
	ck := loginAs(t, engine, "alice", "pw1")

	w := ajaxRequest(engine, http.MethodGet, "/collection", "", ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "Watchmen")
}

func TestDeleteComicAjax(t *testing.T) {
	setup()
	defer teardown()

	userService := service.UserService{}
	comicService := service.ComicService{}
	assert.NoError(t, userService.CreateUser("alice", "pw1"))
	aliceId, _ := userService.GetUserId("alice")
	assert.NoError(t, comicService.AddComic(&model.Comic{Isbn: "111", Title: "A"}, aliceId))
	comics, _ := comicService.GetAllComics(aliceId, "")

	engine := testRouter()
	ck := loginAs(t, engine, "alice", "pw1")

	w := ajaxRequest(engine, http.MethodPost, fmt.Sprintf("/delete/%d", comics[0].Id), "", ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "Comic deleted successfully.")

	comics, err := comicService.GetAllComics(aliceId, "")
	assert.NoError(t, err)
	assert.Empty(t, comics)
}

func TestEditComicAjax(t *testing.T) {
	setup()
	defer teardown()

	userService := service.UserService{}
	comicService := service.ComicService{}
	assert.NoError(t, userService.CreateUser("alice", "pw1"))
	aliceId, _ := userService.GetUserId("alice")
	assert.NoError(t, comicService.AddComic(&model.Comic{Isbn: "111", Title: "A"}, aliceId))
	comics, _ := comicService.GetAllComics(aliceId, "")

	engine := testRouter()
	ck := loginAs(t, engine, "alice", "pw1")

	form := url.Values{
		"comic_id":  {fmt.Sprint(comics[0].Id)},
		"title":     {"New Title"},
		"authors":   {"New Author"},
		"publisher": {"New Publisher"},
	}
	w := ajaxRequest(engine, http.MethodPost, "/edit_comic", form.Encode(), ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Comic updated successfully!")

	comics, _ = comicService.GetAllComics(aliceId, "")
	assert.Equal(t, "New Title", comics[0].Title)
}
