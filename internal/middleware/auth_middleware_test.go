package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/auth-api/internal/domain/entity"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
	"github.com/yourusername/auth-api/pkg/auth"
	"github.com/yourusername/auth-api/pkg/auth/manager"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) UpdateFullName(id uint, fullName string) error {
	args := m.Called(id, fullName)
	return args.Error(0)
}

func setupMiddlewareTest(t *testing.T, userRepo *mockUserRepo) (*AuthMiddleware, *manager.CookieManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService("test-secret", "HS256", time.Hour)
	require.NoError(t, err)
	cookies, err := manager.NewCookieManager(tokens, false)
	require.NoError(t, err)
	mw, err := NewAuthMiddleware(cookies, userRepo)
	require.NoError(t, err)
	return mw, cookies
}

func authedRequest(t *testing.T, cookies *manager.CookieManager, userID uint) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, cookies.SetAuthCookie(rec, userID))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestRequireAuthAllowsValidCookie(t *testing.T) {
	mw, cookies := setupMiddlewareTest(t, new(mockUserRepo))

	router := gin.New()
	router.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		userID := c.GetUint(UserIDKey)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, cookies, 42))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestRequireAuthRejectsMissingCookie(t *testing.T) {
	mw, _ := setupMiddlewareTest(t, new(mockUserRepo))

	router := gin.New()
	router.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	userRepo := new(mockUserRepo)
	mw, cookies := setupMiddlewareTest(t, userRepo)

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, IsAdmin: true}, nil)

	router := gin.New()
	router.GET("/protected", mw.AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, cookies, 1))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOnlyRejectsNonAdmin(t *testing.T) {
	userRepo := new(mockUserRepo)
	mw, cookies := setupMiddlewareTest(t, userRepo)

	userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2, IsAdmin: false}, nil)

	router := gin.New()
	router.GET("/protected", mw.AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, cookies, 2))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnlyRejectsDeletedUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	mw, cookies := setupMiddlewareTest(t, userRepo)

	userRepo.On("GetByID", uint(3)).Return(nil, apperrors.ErrNotFound)

	router := gin.New()
	router.GET("/protected", mw.AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, cookies, 3))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}

func TestAdminOnlyStoreFailure(t *testing.T) {
	userRepo := new(mockUserRepo)
	mw, cookies := setupMiddlewareTest(t, userRepo)

	userRepo.On("GetByID", uint(4)).Return(nil, errors.New("connection reset"))

	router := gin.New()
	router.GET("/protected", mw.AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, cookies, 4))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExtractUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/items/:id", ExtractUintParam("id", "item_id"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"item_id": c.GetUint("item_id")})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/15", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "15")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
