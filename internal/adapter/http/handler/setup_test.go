package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"activityapp/internal/adapter/cache"
	"activityapp/internal/adapter/database"
	server "activityapp/internal/adapter/http"
	"activityapp/internal/adapter/http/routes"
	"activityapp/internal/adapter/storage"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/response"
	"activityapp/pkg/auth"
	"activityapp/pkg/config"
	. "activityapp/pkg/test"
	"activityapp/pkg/test/factory"
)

// api is the whole router over an in-memory database.
type api struct {
	t         *testing.T
	db        *database.DB
	router    *gin.Engine
	container *server.Container
	tokens    *auth.JWT
}

func newAPI(t *testing.T) *api {
	gin.SetMode(gin.TestMode)

	db := InitTestDB()
	t.Cleanup(func() { db.Close() })

	memory := cache.NewMemoryRepository(time.Minute)
	t.Cleanup(func() { memory.Close() })

	uploads := t.TempDir()
	tokens := auth.NewJWT("test-secret", time.Hour)

	container := server.NewContainer(server.Dependencies{
		DB:      db,
		Cache:   memory,
		Storage: storage.NewLocalStorage(uploads),
		Tokens:  tokens,
	})

	cfg := config.GetDefaultConfig()
	cfg.UploadsPath = uploads
	cfg.RateLimitEnabled = false
	cfg.CacheEnabled = false

	return &api{
		t:         t,
		db:        db,
		router:    routes.SetupRouterWithConfig(container.Handlers(), nil, config.NewNopLogger(), cfg),
		container: container,
		tokens:    tokens,
	}
}

func (a *api) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	return rr
}

func (a *api) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)

		if err != nil {
			a.t.Fatalf("encoding body: %v", err)
		}

		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	return a.serve(req, token)
}

// form sends a multipart body with fields plus an optional file under fileField.
func (a *api) form(method, path, token string, fields map[string]string, fileField string, file []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		writer.WriteField(key, value)
	}

	if file != nil {
		part, err := writer.CreateFormFile(fileField, "upload.png")

		if err != nil {
			a.t.Fatalf("creating form file: %v", err)
		}

		part.Write(file)
	}

	writer.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return a.serve(req, token)
}

func (a *api) createUser(customData ...map[string]any) (domain.User, string) {
	user, err := a.container.UserRepo.Create(context.Background(), factory.NewUser(customData...))

	if err != nil {
		a.t.Fatalf("creating user: %v", err)
	}

	token, err := a.tokens.CreateToken(user.ID)

	if err != nil {
		a.t.Fatalf("creating token: %v", err)
	}

	return user, token
}

func (a *api) createActivity(creatorID int, customData ...map[string]any) domain.Activity {
	activity, err := a.container.ActivityRepo.Create(context.Background(),
		factory.NewActivity(creatorID, ActivityTypeID(a.t, a.db, "Corrida"), customData...))

	if err != nil {
		a.t.Fatalf("creating activity: %v", err)
	}

	return activity
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	var data T

	if err := json.Unmarshal(rr.Body.Bytes(), &data); err != nil {
		t.Fatalf("decoding %q: %v", rr.Body.String(), err)
	}

	return data
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	return decode[response.ErrorResponse](t, rr).Error
}
