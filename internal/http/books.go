package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/entities"
)

// BooksController exposes the book catalogue.
type BooksController struct {
	store BookStore
	log   *zap.Logger
}

func NewBooksController(store BookStore, log *zap.Logger) *BooksController {
	return &BooksController{store: store, log: log}
}

type createBookRequest struct {
	Title      string `json:"title" binding:"required"`
	Author     string `json:"author"`
	ISBN       string `json:"isbn"`
	TotalPages int    `json:"total_pages" binding:"required"`
}

// CreateBook handles POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if !bindJSON(c, &req) {
		return
	}
	book := &entities.Book{
		Title:      req.Title,
		Author:     req.Author,
		ISBN:       req.ISBN,
		TotalPages: entities.Pages(req.TotalPages),
	}
	if err := bc.store.Create(c.Request.Context(), book); err != nil {
		respondAppError(c, bc.log, err)
		return
	}
	respondCreated(c, book)
}

// GetAllBooks handles GET /api/books
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	q, ok := parseListQuery(c, bc.log)
	if !ok {
		return
	}
	result, err := bc.store.FindAll(c.Request.Context(), q)
	if err != nil {
		respondAppError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(result, q))
}

// GetBook handles GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := bc.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondAppError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, book)
}
