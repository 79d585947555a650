package entities

import (
	"time"
)

type User struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	FirstName    string        `gorm:"size:100" json:"firstName"`
	LastName     string        `gorm:"size:100" json:"lastName"`
	Email        string        `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string        `gorm:"size:100" json:"-"`
	ReadingLists []ReadingList `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// RegistrationKey is a pre-provisioned single-use invitation code.
// A key flips to used exactly once during registration and is never reset.
type RegistrationKey struct {
	Code      string    `gorm:"primaryKey;column:key_code;size:64" json:"keyCode"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	ISBN13 *string `gorm:"uniqueIndex;size:13" json:"isbn13,omitempty"`
	ISBN10 *string `gorm:"uniqueIndex;size:10" json:"isbn10,omitempty"`
	Title  string  `gorm:"index;size:512" json:"title"`
	Author string  `gorm:"index;size:256" json:"author"`

	Publisher string `gorm:"size:256" json:"publisher,omitempty"`
	// ISO-8601 date (YYYY-MM-DD); lexicographic order matches chronological order.
	PublicationDate *string `gorm:"size:10" json:"publicationDate,omitempty"`
	Edition         string  `gorm:"size:100" json:"edition,omitempty"`
	Genre           string  `gorm:"size:100" json:"genre,omitempty"`
	Language        string  `gorm:"size:100" json:"language,omitempty"`
	PageCount       *int    `json:"pageCount,omitempty"`
	Summary         string  `gorm:"type:text" json:"summary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReadingList struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"userId"`
	Title     string    `gorm:"size:512" json:"title"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookStatus is the lookup set of valid per-pairing statuses.
// Rows are seeded at startup and never created through the API.
type BookStatus struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50" json:"name"`
}

// ReadingListEntry joins a reading list and a book with a status.
// The composite unique index makes duplicate pairings impossible at the store
// level, so concurrent adds cannot both commit.
type ReadingListEntry struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ReadingListID uint        `gorm:"uniqueIndex:idx_list_book" json:"readingListId"`
	BookID        uint        `gorm:"uniqueIndex:idx_list_book" json:"bookId"`
	StatusID      uint        `gorm:"index" json:"statusId"`
	ReadingList   ReadingList `gorm:"foreignKey:ReadingListID;constraint:OnDelete:CASCADE" json:"-"`
	Book          Book        `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Status        BookStatus  `gorm:"foreignKey:StatusID" json:"-"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (RegistrationKey) TableName() string {
	return "registration_keys"
}

func (Book) TableName() string {
	return "books"
}

func (ReadingList) TableName() string {
	return "reading_lists"
}

func (BookStatus) TableName() string {
	return "lu_book_status"
}

func (ReadingListEntry) TableName() string {
	return "reading_list_matrix"
}
