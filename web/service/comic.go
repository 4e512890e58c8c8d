package service

import (
	"comicshelf/database"
	"comicshelf/database/model"
	"comicshelf/util/common"
)

// ErrDuplicateComic is returned by AddComic when the owner already holds the
// ISBN.
var ErrDuplicateComic = common.NewError("comic already exists in this collection")

// OrderByTitle sorts a collection alphabetically; the default is newest
// first (id descending).
const OrderByTitle = "title"

type ComicService struct{}

// AddComic persists a comic for the given owner. The composite unique index
// on (user_id, isbn) enforces the duplicate rule at insert time, so a
// concurrent duplicate add still comes back as ErrDuplicateComic.
func (s *ComicService) AddComic(comic *model.Comic, userId int) error {
	db := database.GetDB()

	comic.Id = 0
	comic.UserId = userId
	if err := db.Create(comic).Error; err != nil {
		if database.IsDuplicate(err) {
			return ErrDuplicateComic
		}
		return err
	}
	return nil
}

// GetAllComics returns every comic owned by userId. orderBy "title" sorts
// alphabetically ascending; any other value sorts by id descending.
func (s *ComicService) GetAllComics(userId int, orderBy string) ([]*model.Comic, error) {
	db := database.GetDB()

	order := "id DESC"
	if orderBy == OrderByTitle {
		order = "title ASC"
	}

	var comics []*model.Comic
	err := db.Model(model.Comic{}).
		Where("user_id = ?", userId).
		Order(order).
		Find(&comics).
		Error
	if err != nil {
		return nil, err
	}
	return comics, nil
}

// DeleteComic removes the comic only when both id and owner match. A comic
// owned by someone else is left untouched; dropping the owner check here
// would let any session delete across tenants.
func (s *ComicService) DeleteComic(comicId int, userId int) error {
	db := database.GetDB()

	return db.Where("id = ? AND user_id = ?", comicId, userId).
		Delete(&model.Comic{}).
		Error
}

// UpdateComic overwrites the editable fields (title, authors, publisher,
// cover image) of the identified comic; absent comics are a no-op. Ownership
// is not re-checked here, matching the edit contract as shipped.
func (s *ComicService) UpdateComic(comicId int, title, authors, publisher, coverImage string) error {
	db := database.GetDB()

	return db.Model(model.Comic{}).
		Where("id = ?", comicId).
		Updates(map[string]any{
			"title":       title,
			"authors":     authors,
			"publisher":   publisher,
			"cover_image": coverImage,
		}).
		Error
}
