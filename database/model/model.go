// Package model defines the persistent entities of comicshelf.
package model

// User is an account that owns a comic collection. Username is unique and
// immutable after creation; PasswordHash holds the bcrypt digest and is never
// serialized or logged.
type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`

	Comics []Comic `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// Comic is a single collected book. The (user_id, isbn) pair is unique per
// owner; different users may hold the same ISBN independently. Deleting the
// owning user cascades to their comics.
type Comic struct {
	Id            int    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId        int    `json:"userId" gorm:"not null;uniqueIndex:idx_user_isbn"`
	Isbn          string `json:"isbn" gorm:"uniqueIndex:idx_user_isbn"`
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"publishedDate"`
	CoverImage    string `json:"coverImage"`
	InfoLink      string `json:"infoLink"`
}

func (Comic) TableName() string {
	return "comics"
}
