package controllers

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"tandem-server/configs"
	"tandem-server/internal/models"
	"tandem-server/internal/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	configs.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrateInOrder(db))

	repositories.DBS.Postgres = db
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:        id,
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Username:  id,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	repositories.DBS.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr
}

type echoValidator struct {
	validate *validator.Validate
}

func (v *echoValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &echoValidator{validate: validator.New()}
	return e
}

// newJSONContext builds an authenticated echo context carrying a JSON body.
func newJSONContext(e *echo.Echo, method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

// fakeDirectory stands in for the external messaging directory.
type fakeDirectory struct {
	upserted  []*models.User
	upsertErr error
	token     string
	tokenErr  error
}

func (f *fakeDirectory) UpsertUser(_ context.Context, user *models.User) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, user)
	return nil
}

func (f *fakeDirectory) CreateUserToken(userID string) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return f.token + userID, nil
}

// sentEmail records one invitation delivery attempt.
type sentEmail struct {
	To            string
	WorkspaceName string
	InviterName   string
	InviteURL     string
}

// fakeMailer captures invitation emails instead of dialing SMTP. Sends happen
// on a goroutine, so access is guarded.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeMailer) SendInvitationEmail(to, workspaceName, inviterName, inviteURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{to, workspaceName, inviterName, inviteURL})
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeMailer) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, s := range f.sent {
		out = append(out, s.To)
	}
	return out
}
