package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/libhub/go-library-backend/internal/domain"
	"github.com/libhub/go-library-backend/internal/services"
	"github.com/libhub/go-library-backend/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Stub services with overridable function fields. Unset fields panic, which
// flags a handler calling an operation the test did not expect.

type stubBorrowSvc struct {
	list        func(ctx context.Context) ([]domain.BorrowRecord, error)
	listByUser  func(ctx context.Context, userID int) ([]domain.BorrowRecord, error)
	listOverdue func(ctx context.Context) ([]domain.BorrowRecord, error)
	borrow      func(ctx context.Context, userID, bookID int, title, author string) (*domain.BorrowRecord, error)
	ret         func(ctx context.Context, id int) (*domain.BorrowRecord, error)
	del         func(ctx context.Context, id int) error
}

func (s *stubBorrowSvc) List(ctx context.Context) ([]domain.BorrowRecord, error) { return s.list(ctx) }
func (s *stubBorrowSvc) ListByUser(ctx context.Context, userID int) ([]domain.BorrowRecord, error) {
	return s.listByUser(ctx, userID)
}
func (s *stubBorrowSvc) ListOverdue(ctx context.Context) ([]domain.BorrowRecord, error) {
	return s.listOverdue(ctx)
}
func (s *stubBorrowSvc) Borrow(ctx context.Context, userID, bookID int, title, author string) (*domain.BorrowRecord, error) {
	return s.borrow(ctx, userID, bookID, title, author)
}
func (s *stubBorrowSvc) Return(ctx context.Context, id int) (*domain.BorrowRecord, error) {
	return s.ret(ctx, id)
}
func (s *stubBorrowSvc) Delete(ctx context.Context, id int) error { return s.del(ctx, id) }

type stubBookSvc struct {
	list           func(ctx context.Context) ([]domain.Book, error)
	listByCategory func(ctx context.Context, category string) ([]domain.Book, error)
	get            func(ctx context.Context, id int) (*domain.Book, error)
	create         func(ctx context.Context, in services.BookInput) (*domain.Book, error)
	update         func(ctx context.Context, id int, in services.BookInput) (*domain.Book, error)
	del            func(ctx context.Context, id int) error
}

func (s *stubBookSvc) List(ctx context.Context) ([]domain.Book, error) { return s.list(ctx) }
func (s *stubBookSvc) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	return s.listByCategory(ctx, category)
}
func (s *stubBookSvc) Get(ctx context.Context, id int) (*domain.Book, error) { return s.get(ctx, id) }
func (s *stubBookSvc) Create(ctx context.Context, in services.BookInput) (*domain.Book, error) {
	return s.create(ctx, in)
}
func (s *stubBookSvc) Update(ctx context.Context, id int, in services.BookInput) (*domain.Book, error) {
	return s.update(ctx, id, in)
}
func (s *stubBookSvc) Delete(ctx context.Context, id int) error { return s.del(ctx, id) }

type stubUserSvc struct {
	list     func(ctx context.Context) ([]domain.User, error)
	get      func(ctx context.Context, id int) (*domain.User, error)
	register func(ctx context.Context, username, email, password, name string) (*domain.User, error)
	login    func(ctx context.Context, username, password string) (*domain.User, error)
	update   func(ctx context.Context, id int, name, email string) (*domain.User, error)
	del      func(ctx context.Context, id int) error
}

func (s *stubUserSvc) List(ctx context.Context) ([]domain.User, error)        { return s.list(ctx) }
func (s *stubUserSvc) Get(ctx context.Context, id int) (*domain.User, error)  { return s.get(ctx, id) }
func (s *stubUserSvc) Register(ctx context.Context, username, email, password, name string) (*domain.User, error) {
	return s.register(ctx, username, email, password, name)
}
func (s *stubUserSvc) Login(ctx context.Context, username, password string) (*domain.User, error) {
	return s.login(ctx, username, password)
}
func (s *stubUserSvc) UpdateProfile(ctx context.Context, id int, name, email string) (*domain.User, error) {
	return s.update(ctx, id, name, email)
}
func (s *stubUserSvc) Delete(ctx context.Context, id int) error { return s.del(ctx, id) }

type stubCartMgr struct {
	get    func(ctx context.Context, userID string) (*session.Session, error)
	add    func(ctx context.Context, userID string, item session.CartItem) (*session.Session, error)
	remove func(ctx context.Context, userID string, bookID int) (*session.Session, error)
	clear  func(ctx context.Context, userID string) (*session.Session, error)
}

func (s *stubCartMgr) Get(ctx context.Context, userID string) (*session.Session, error) {
	return s.get(ctx, userID)
}
func (s *stubCartMgr) AddToCart(ctx context.Context, userID string, item session.CartItem) (*session.Session, error) {
	return s.add(ctx, userID, item)
}
func (s *stubCartMgr) RemoveFromCart(ctx context.Context, userID string, bookID int) (*session.Session, error) {
	return s.remove(ctx, userID, bookID)
}
func (s *stubCartMgr) ClearCart(ctx context.Context, userID string) (*session.Session, error) {
	return s.clear(ctx, userID)
}

// newTestRouter wires the handlers to the same paths the real router uses,
// minus the middleware stack.
func newTestRouter(h *Handlers) *gin.Engine {
	r := gin.New()

	r.GET("/borrowing", h.ListBorrowing)
	r.GET("/borrowing/user/:userId", h.ListBorrowingByUser)
	r.GET("/borrowing/overdue", h.ListOverdue)
	r.POST("/borrowing/borrow", h.BorrowBook)
	r.PUT("/borrowing/return/:id", h.ReturnBook)
	r.DELETE("/borrowing/:id", h.DeleteBorrowing)

	r.GET("/books", h.ListBooks)
	r.GET("/books/:id", h.GetBook)
	r.GET("/books/category/:category", h.ListBooksByCategory)
	r.POST("/books", h.CreateBook)
	r.PUT("/books/:id", h.UpdateBook)
	r.DELETE("/books/:id", h.DeleteBook)

	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.POST("/users", h.RegisterUser)
	r.POST("/users/login", h.Login)
	r.PUT("/users/:id", h.UpdateUser)
	r.DELETE("/users/:id", h.DeleteUser)

	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddCartItem)
	r.DELETE("/cart/items/:bookId", h.RemoveCartItem)
	r.DELETE("/cart", h.ClearCart)

	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v (body %q)", err, w.Body.String())
	}
	return resp
}
