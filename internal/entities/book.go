package entities

type ReadingStatus string

const (
	StatusUnread    ReadingStatus = "Unread"
	StatusReading   ReadingStatus = "Reading"
	StatusCompleted ReadingStatus = "Completed"
)

// ReadingStatuses lists the canonical statuses in display order.
var ReadingStatuses = []ReadingStatus{StatusUnread, StatusReading, StatusCompleted}

// IsValid reports whether s is one of the canonical statuses.
// The store accepts any text; callers that need the closed set check here.
func (s ReadingStatus) IsValid() bool {
	for _, known := range ReadingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s ReadingStatus) String() string {
	return string(s)
}

// Book is a catalogued title. Only Status is ever updated in place.
type Book struct {
	ID     uint          `gorm:"primaryKey" json:"id"`
	Title  string        `gorm:"type:text;not null" json:"title"`
	Author string        `gorm:"type:text;not null" json:"author"`
	Genre  *string       `gorm:"type:text" json:"genre,omitempty"`
	Year   *int          `gorm:"type:integer" json:"year,omitempty"`
	Rating *float64      `gorm:"type:real" json:"rating,omitempty"`
	Status ReadingStatus `gorm:"type:text;default:Unread" json:"status"`
	Image  []byte        `gorm:"type:blob" json:"-"` // raw cover file, never re-encoded
}

func (Book) TableName() string {
	return "books"
}

// HasCover reports whether a cover image is stored for the book.
func (b *Book) HasCover() bool {
	return len(b.Image) > 0
}

// GenreOrEmpty returns the genre, or "" when none was recorded.
func (b *Book) GenreOrEmpty() string {
	if b.Genre == nil {
		return ""
	}
	return *b.Genre
}

// BucketListEntry marks a book as "want to read".
//
// BookID references books.id but deleting a book leaves the entry in place.
// Listings inner-join on books, so dangling entries are simply not returned.
type BucketListEntry struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BookID uint `gorm:"type:integer;uniqueIndex:idx_book_bucket_list_book_id" json:"book_id"`
	Book   Book `gorm:"foreignKey:BookID;references:ID" json:"-"`
}

func (BucketListEntry) TableName() string {
	return "book_bucket_list"
}
