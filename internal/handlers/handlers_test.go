package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eryss-app/backend/internal/models"
	"github.com/eryss-app/backend/internal/repositories"
	"github.com/eryss-app/backend/validators"
	"github.com/labstack/echo/v4"
)

// testEnv bundles the Echo instance, database and repositories the
// handler tests share.
type testEnv struct {
	e          *echo.Echo
	db         *gorm.DB
	userRepo   repositories.UserRepository
	imageRepo  repositories.ImageRepository
	likeRepo   repositories.LikeRepository
	saveRepo   repositories.SaveRepository
	followRepo repositories.FollowRepository
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	dbPath := "./test_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.Like{},
		&models.Save{},
		&models.Follow{},
	)
	require.NoError(t, err)

	e := echo.New()
	e.Validator = validators.NewValidator()

	env := &testEnv{
		e:          e,
		db:         db,
		userRepo:   repositories.NewPostgresUserRepository(db),
		imageRepo:  repositories.NewPostgresImageRepository(db),
		likeRepo:   repositories.NewPostgresLikeRepository(db),
		saveRepo:   repositories.NewPostgresSaveRepository(db),
		followRepo: repositories.NewPostgresFollowRepository(db),
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return env, cleanup
}

func (env *testEnv) createUser(t *testing.T, name string) *models.User {
	user := &models.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) createImage(t *testing.T, userID, title string) *models.Image {
	image := &models.Image{
		UserID:   userID,
		Title:    title,
		ImageURL: "https://res.cloudinary.com/demo/test.jpg",
	}
	require.NoError(t, env.db.Create(image).Error)
	return image
}

// newRequest builds an Echo context the way the middleware chain
// would: JSON body bound from the request, claims set for the viewer
// when viewerID is non-empty.
func (env *testEnv) newRequest(method, target string, body any, viewerID string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = strings.NewReader(string(encoded))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if viewerID != "" {
		c.Set("user", &models.JwtCustomClaims{UserID: viewerID})
	}
	return c, rec
}

// startQueryCounter counts every SELECT issued through the test
// database until the test ends. Counts and plucks run through the same
// query callback chain, so they are counted too.
func (env *testEnv) startQueryCounter(t *testing.T) *int {
	var n int
	err := env.db.Callback().Query().After("gorm:query").Register("test_query_counter", func(*gorm.DB) { n++ })
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, env.db.Callback().Query().Remove("test_query_counter"))
	})
	return &n
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func requireHTTPError(t *testing.T, err error, code int) {
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	require.Equal(t, code, httpErr.Code)
}

// fakeUploader stands in for the media host in tests.
type fakeUploader struct {
	url string
	err error
}

func (f *fakeUploader) Upload(ctx context.Context, dataURI string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}
