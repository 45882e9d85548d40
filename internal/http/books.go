package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelnest/internal/covers"
	"github.com/mrlokans/novelnest/internal/database/books"
	"github.com/mrlokans/novelnest/internal/entities"
	"github.com/mrlokans/novelnest/internal/utils"
)

// BooksController serves the catalogue: listing, search, create, status
// changes, deletion and cover images.
type BooksController struct {
	store  BookStore
	covers *covers.Validator
}

func NewBooksController(store BookStore, coverValidator *covers.Validator) *BooksController {
	if coverValidator == nil {
		coverValidator = covers.NewValidator(0)
	}
	return &BooksController{store: store, covers: coverValidator}
}

// BookResponse is a book as returned to clients. The cover bytes are served
// separately from CoverURL.
type BookResponse struct {
	entities.Book
	HasCover bool   `json:"has_cover"`
	CoverURL string `json:"cover_url,omitempty"`
}

func toBookResponse(book entities.Book) BookResponse {
	resp := BookResponse{Book: book, HasCover: book.HasCover()}
	if resp.HasCover {
		resp.CoverURL = fmt.Sprintf("/api/books/%d/cover", book.ID)
	}
	return resp
}

func toBookResponses(list []entities.Book) []BookResponse {
	out := make([]BookResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookResponse(b))
	}
	return out
}

// CreateBookRequest is accepted as JSON (image base64-encoded) or as a
// multipart form with the cover in the "image" file field.
type CreateBookRequest struct {
	Title  string   `json:"title" form:"title" binding:"required,max=300"`
	Author string   `json:"author" form:"author" binding:"required,max=300"`
	Genre  string   `json:"genre" form:"genre" binding:"required,max=100"`
	Year   int      `json:"year" form:"year" binding:"required,publication_year"`
	Rating *float64 `json:"rating" form:"rating" binding:"omitempty,min=1,max=5"`
	Status string   `json:"status" form:"status" binding:"omitempty,reading_status"`
	Image  []byte   `json:"image" form:"-"`
}

// UpdateStatusRequest is the body of PATCH /api/books/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required,reading_status"`
}

// ListBooks handles GET /api/books?q=&genre=
// q matches title or author ignoring case; genre must match exactly.
func (bc *BooksController) ListBooks(c *gin.Context) {
	ctx := c.Request.Context()
	query := strings.TrimSpace(c.Query("q"))
	genre := strings.TrimSpace(c.Query("genre"))

	var (
		list []entities.Book
		err  error
	)
	switch {
	case query != "":
		list, err = bc.store.SearchBooks(ctx, query)
		if err == nil && genre != "" {
			list = filterByGenre(list, genre)
		}
	case genre != "":
		list, err = bc.store.GetBooksByGenre(ctx, genre)
	default:
		list, err = bc.store.GetAllBooks(ctx)
	}
	if err != nil {
		respondStorageError(c, err, "list books")
		return
	}

	respondList(c, toBookResponses(list))
}

func filterByGenre(list []entities.Book, genre string) []entities.Book {
	filtered := list[:0]
	for _, b := range list {
		if b.GenreOrEmpty() == genre {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// GetBook handles GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(c.Request.Context(), id)
	if err != nil {
		respondStorageError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}

// CreateBook handles POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !bindAndValidate(c, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.Genre = strings.TrimSpace(req.Genre)
	if blank := blankRequiredFields(req); len(blank) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Code:    "validation_failed",
			Details: blank,
		})
		return
	}

	image, ok := bc.readCover(c, req.Image)
	if !ok {
		return
	}

	in := books.NewBook{
		Title:  req.Title,
		Author: req.Author,
		Genre:  &req.Genre,
		Year:   &req.Year,
		Rating: req.Rating,
		Status: entities.ReadingStatus(req.Status),
		Image:  image,
	}

	book, err := bc.store.AddBook(c.Request.Context(), in)
	if err != nil {
		respondStorageError(c, err, "add book")
		return
	}

	respondCreated(c, toBookResponse(*book))
}

func blankRequiredFields(req CreateBookRequest) []FieldError {
	var blank []FieldError
	for _, f := range []struct{ name, value string }{
		{"title", req.Title},
		{"author", req.Author},
		{"genre", req.Genre},
	} {
		if f.value == "" {
			blank = append(blank, FieldError{Field: f.name, Rule: "required", Message: f.name + " is required"})
		}
	}
	return blank
}

// readCover takes the cover from the multipart "image" field, falling back
// to the base64 JSON field. It responds with 400 when the cover is rejected.
func (bc *BooksController) readCover(c *gin.Context, fromJSON []byte) ([]byte, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		if err != nil {
			respondBadRequest(c, "invalid image upload")
			return nil, false
		}
		f, err := fh.Open()
		if err != nil {
			respondInternalError(c, err, "open uploaded cover")
			return nil, false
		}
		defer f.Close()

		data, _, err := bc.covers.Read(f)
		if err != nil {
			respondCoverError(c, err)
			return nil, false
		}
		return data, true
	}

	if len(fromJSON) == 0 {
		return nil, true
	}
	if _, err := bc.covers.Validate(fromJSON); err != nil {
		respondCoverError(c, err)
		return nil, false
	}
	return fromJSON, true
}

func respondCoverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, covers.ErrTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, covers.ErrUnsupportedType):
		respondError(c, http.StatusUnsupportedMediaType, "cover must be a JPEG or PNG image")
	default:
		respondBadRequest(c, err.Error())
	}
}

// UpdateStatus handles PATCH /api/books/:id/status
func (bc *BooksController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := bc.store.GetBookByID(ctx, id); err != nil {
		respondStorageError(c, err, "update status")
		return
	}

	status := entities.ReadingStatus(req.Status)
	if err := bc.store.UpdateBookStatus(ctx, id, status); err != nil {
		respondStorageError(c, err, "update status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// DeleteBook handles DELETE /api/books/:id
// Bucket-list entries for the book are left for the cleanup job.
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := bc.store.GetBookByID(ctx, id)
	if err != nil {
		respondStorageError(c, err, "delete book")
		return
	}

	if err := bc.store.DeleteBook(ctx, id); err != nil {
		respondStorageError(c, err, "delete book")
		return
	}

	respondSuccess(c, fmt.Sprintf("'%s' deleted", book.Title))
}

// GetCover handles GET /api/books/:id/cover
// The stored bytes are written back unchanged.
func (bc *BooksController) GetCover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(c.Request.Context(), id)
	if err != nil {
		respondStorageError(c, err, "get cover")
		return
	}
	if !book.HasCover() {
		respondNotFound(c, "cover")
		return
	}

	contentType := covers.ContentType(book.Image)
	filename := utils.CoverFilename(book.Title, book.Author, contentType)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, contentType, book.Image)
}

// ListGenres handles GET /api/genres
func (bc *BooksController) ListGenres(c *gin.Context) {
	genres, err := bc.store.GetGenres(c.Request.Context())
	if err != nil {
		respondStorageError(c, err, "list genres")
		return
	}
	respondList(c, genres)
}
