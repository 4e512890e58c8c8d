// Package service implements the business logic of comicshelf: user accounts,
// per-user comic collections, catalog lookups and barcode scanning.
package service

import (
	"comicshelf/database"
	"comicshelf/database/model"
	"comicshelf/logger"
	"comicshelf/util/common"
	"comicshelf/util/crypto"

	"gorm.io/gorm"
)

// ErrUsernameTaken is returned by CreateUser when the username already exists.
var ErrUsernameTaken = common.NewError("username already exists")

type UserService struct{}

// CreateUser hashes the password and persists a new account. The unique index
// on username turns a concurrent duplicate signup into ErrUsernameTaken too.
func (s *UserService) CreateUser(username string, password string) error {
	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).
		Where("username = ?", username).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// CheckUser verifies credentials and returns the account on success. Unknown
// username and wrong password both collapse to nil so callers cannot tell
// the two failures apart.
func (s *UserService) CheckUser(username string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil
	}

	return user
}

// GetUserId resolves a username to its id, 0 when absent.
func (s *UserService) GetUserId(username string) (int, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return user.Id, nil
}

// GetUsernameById resolves an id to its username, "" when absent.
func (s *UserService) GetUsernameById(id int) (string, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return user.Username, nil
}

// DeleteUser removes the account and all of its comics in one transaction.
func (s *UserService) DeleteUser(id int) error {
	db := database.GetDB()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Comic{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
