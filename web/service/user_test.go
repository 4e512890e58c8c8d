package service

import (
	"os"
	"testing"

	"comicshelf/database"
	"comicshelf/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("COMICSHELF_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.DEBUG)
	os.Exit(m.Run())
}

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestUserService(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	// Test CreateUser
	err := service.CreateUser("alice", "pw1")
	assert.NoError(t, err)

	// Duplicate username is a typed negative, not a fault
	err = service.CreateUser("alice", "other-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// The original record must be untouched by the rejected signup
	user := service.CheckUser("alice", "pw1")
	assert.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	// Test GetUserId / GetUsernameById round trip
	id, err := service.GetUserId("alice")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, id)

	username, err := service.GetUsernameById(id)
	assert.NoError(t, err)
	assert.Equal(t, "alice", username)

	// Absent lookups return zero values without error
	id, err = service.GetUserId("nobody")
	assert.NoError(t, err)
	assert.Zero(t, id)

	username, err = service.GetUsernameById(9999)
	assert.NoError(t, err)
	assert.Empty(t, username)
}

func TestCheckUserCollapsesFailures(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	assert.NoError(t, service.CreateUser("alice", "pw1"))

	// Wrong password and unknown user are indistinguishable to the caller
	assert.Nil(t, service.CheckUser("alice", "wrong"))
	assert.Nil(t, service.CheckUser("nouser", "x"))
}

func TestPasswordStoredAsHash(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	assert.NoError(t, service.CreateUser("alice", "pw1"))

	user := service.CheckUser("alice", "pw1")
	assert.NotNil(t, user)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestDeleteUserCascades(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	comicService := ComicService{}

	assert.NoError(t, userService.CreateUser("alice", "pw1"))
	aliceId, _ := userService.GetUserId("alice")

	assert.NoError(t, comicService.AddComic(testComic("111", "A"), aliceId))
	assert.NoError(t, comicService.AddComic(testComic("222", "B"), aliceId))

	assert.NoError(t, userService.DeleteUser(aliceId))

	comics, err := comicService.GetAllComics(aliceId, "")
	assert.NoError(t, err)
	assert.Empty(t, comics)

	username, err := userService.GetUsernameById(aliceId)
	assert.NoError(t, err)
	assert.Empty(t, username)
}
