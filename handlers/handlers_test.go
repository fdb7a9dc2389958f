package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"menuboard-api/config"
	"menuboard-api/handlers"
	"menuboard-api/middleware"
	"menuboard-api/models"
	"menuboard-api/notify"
	"menuboard-api/pkg/logger"
	"menuboard-api/routes"
	"menuboard-api/services"
	"menuboard-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *notify.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.ConsumerMenuItem{},
		&models.Image{},
	))

	appLog := logger.New("menuboard-api-test")
	hub := notify.NewHub()
	menuSvc := services.NewMenuService(db, hub)
	session := middleware.NewAuth("test-secret", 3600)

	r := gin.New()
	r.Use(middleware.RequestID())
	routes.SetupRoutes(r, routes.Handlers{
		Auth:     &handlers.AuthHandler{DB: db, Auth: session},
		Menu:     &handlers.MenuHandler{DB: db, Menu: menuSvc},
		Public:   &handlers.PublicHandler{DB: db, Menu: menuSvc, Hub: hub},
		Consumer: &handlers.ConsumerHandler{Consumer: services.NewConsumerService(db)},
		Images: &handlers.ImageHandler{
			DB:      db,
			Store:   storage.NewImageStore(config.ImageStoreConfig{}, appLog),
			Webhook: storage.NewWebhook("", appLog),
			Log:     appLog,
		},
		Session: session,
	})
	return r, hub
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func registerOwner(t *testing.T, r *gin.Engine, email string) (token string, restaurantID uint) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Owner", "email": email, "password": "secret1",
		"role": "restaurant", "restaurant_name": "Testaurant",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	token = body["token"].(string)
	restaurantID = uint(body["restaurant"].(map[string]any)["id"].(float64))
	return token, restaurantID
}

func TestRegisterLoginLogout(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Dana", "email": "dana@test.com", "password": "secret1", "role": "consumer",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookie+"=")

	// duplicate email conflicts
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Dana", "email": "dana@test.com", "password": "secret1", "role": "consumer",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "dana@test.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "dana@test.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// logout expires the cookie
	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookie+"=;")
}

func TestSessionCookieAuthenticates(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerOwner(t, r, "cookie@test.com")

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMenuLifecycleOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	token, restaurantID := registerOwner(t, r, "owner@test.com")

	w := doJSON(t, r, http.MethodPost, "/api/restaurant/menu", token, gin.H{
		"restaurant_id": restaurantID,
		"name":          "Gnocchi",
		"description":   "Potato dumplings",
		"price":         "14.00",
		"course_tags":   []string{" Mains ", ""},
		"allergens":     gin.H{"gluten": true},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode(t, w)["item"].(map[string]any)
	itemID := uint(item["id"].(float64))
	assert.Equal(t, "draft", item["status"])
	assert.Equal(t, []any{"Mains"}, item["course_tags"])

	// missing description is a field-level 400
	w = doJSON(t, r, http.MethodPost, "/api/restaurant/menu", token, gin.H{
		"restaurant_id": restaurantID, "name": "No description",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "description", decode(t, w)["field"])

	// draft items are invisible publicly
	w = doJSON(t, r, http.MethodGet, "/api/restaurants/1/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	// go live
	w = doJSON(t, r, http.MethodPut, "/api/restaurant/menu/1/status", token, gin.H{"status": "live"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/restaurants/1/menu?exclude=milk&tags=Mains", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	// excluding gluten hides it again
	w = doJSON(t, r, http.MethodGet, "/api/restaurants/1/menu?exclude=gluten", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	// another owner cannot touch the item
	otherToken, _ := registerOwner(t, r, "other@test.com")
	w = doJSON(t, r, http.MethodDelete, "/api/restaurant/menu/1", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/restaurant/menu/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	_ = itemID
}

func TestRoleGuards(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Dana", "email": "dana@test.com", "password": "secret1", "role": "consumer",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	consumerToken := decode(t, w)["token"].(string)

	// consumers cannot reach owner routes
	w = doJSON(t, r, http.MethodPost, "/api/restaurant/restaurants", consumerToken, gin.H{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// and owner tokens cannot reach consumer routes
	ownerToken, _ := registerOwner(t, r, "owner@test.com")
	w = doJSON(t, r, http.MethodGet, "/api/consumer/menu", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// unauthenticated requests are rejected outright
	w = doJSON(t, r, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConsumerMenuFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Dana", "email": "dana@test.com", "password": "secret1", "role": "consumer",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token := decode(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/consumer/menu", token, gin.H{
		"name": "Street Tacos", "description": "From the market stall",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode(t, w)["item"].(map[string]any)
	assert.Equal(t, "upload", item["source"])

	w = doJSON(t, r, http.MethodGet, "/api/consumer/menu", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestPreferencesUpdate(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Dana", "email": "dana@test.com", "password": "secret1", "role": "consumer",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token := decode(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodPut, "/api/profile/preferences", token, gin.H{
		"language":        "de",
		"saved_allergens": []string{"milk", "peanuts"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "de", user["language"])
	assert.Equal(t, []any{"milk", "peanuts"}, user["saved_allergens"])
}

// newMultipart writes a single-file multipart body and returns its
// Content-Type.
func newMultipart(t *testing.T, buf *bytes.Buffer, field, filename, content string) string {
	t.Helper()
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return mw.FormDataContentType()
}

func TestImportExportOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	token, restaurantID := registerOwner(t, r, "owner@test.com")

	csvText := "Name,Description,Price,Course Type,Custom Tags,Allergens\n" +
		"Dish,tasty,$5.00,Mains,Popular,milk\n"

	var buf bytes.Buffer
	mw := newMultipart(t, &buf, "file", "menu.csv", csvText)
	req := httptest.NewRequest(http.MethodPost, "/api/restaurant/restaurants/1/menu/import", &buf)
	req.Header.Set("Content-Type", mw)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)["result"].(map[string]any)
	assert.Equal(t, float64(1), result["success"])

	w2 := doJSON(t, r, http.MethodGet, "/api/restaurant/restaurants/1/menu/export", token, nil)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.True(t, strings.HasPrefix(w2.Body.String(), `"Name","Description","Price"`))
	assert.Contains(t, w2.Body.String(), `"5.00"`)
	_ = restaurantID
}
