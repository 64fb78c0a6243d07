package controllers

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"tandem-server/configs"
	"tandem-server/internal/logics"
	"tandem-server/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

const providerPayload = `{
	"type": "user.created",
	"data": {
		"id": "user_abc",
		"first_name": "Grace",
		"last_name": "Hopper",
		"username": "ghopper",
		"image_url": "https://img.example.com/ghopper.png",
		"email_addresses": [{"email_address": "grace@example.com"}]
	}
}`

func newWebhookTestController(directory logics.UserDirectory) *WebhookController {
	return NewWebhookController(logics.NewUserService(), directory)
}

func TestHandleClerkWebhookCreatesUser(t *testing.T) {
	db := setupTestDB(t)
	controller := newWebhookTestController(&fakeDirectory{})

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/webhooks/clerk", providerPayload, "")

	require.NoError(t, controller.HandleClerkWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User synced")

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user_abc").Error)
	assert.Equal(t, "grace@example.com", user.Email)
	assert.Equal(t, "Grace", user.FirstName)
}

func TestHandleClerkWebhookIgnoresUnknownEvents(t *testing.T) {
	db := setupTestDB(t)
	controller := newWebhookTestController(&fakeDirectory{})

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/webhooks/clerk",
		`{"type": "session.created", "data": {"id": "sess_1"}}`, "")

	require.NoError(t, controller.HandleClerkWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ignored event")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHandleClerkWebhookRejectsMalformedJSON(t *testing.T) {
	setupTestDB(t)
	controller := newWebhookTestController(&fakeDirectory{})

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/webhooks/clerk", `{"type": `, "")

	require.NoError(t, controller.HandleClerkWebhook(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON payload")
}

// signedWebhookRequest builds a request carrying a valid svix signature for
// the configured secret.
func signedWebhookRequest(t *testing.T, e *echo.Echo, secret, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	wh, err := svix.NewWebhook(secret)
	require.NoError(t, err)

	msgID := "msg_test"
	now := time.Now()
	signature, err := wh.Sign(msgID, now, []byte(payload))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", strconv.FormatInt(now.Unix(), 10))
	req.Header.Set("svix-signature", signature)

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleProviderWebhookVerifiesSignatureAndSyncsDirectory(t *testing.T) {
	db := setupTestDB(t)

	secret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("test-signing-secret-0123"))
	configs.Configs.Secrets.WebhookSecret = secret

	directory := &fakeDirectory{}
	controller := newWebhookTestController(directory)

	e := newTestEcho()
	c, rec := signedWebhookRequest(t, e, secret, providerPayload)

	require.NoError(t, controller.HandleProviderWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User synced")

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user_abc").Error)

	require.Len(t, directory.upserted, 1)
	assert.Equal(t, "user_abc", directory.upserted[0].ID)
}

func TestHandleProviderWebhookRejectsBadSignature(t *testing.T) {
	db := setupTestDB(t)

	configs.Configs.Secrets.WebhookSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("test-signing-secret-0123"))
	otherSecret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("another-signing-secret!!"))

	controller := newWebhookTestController(&fakeDirectory{})

	e := newTestEcho()
	c, rec := signedWebhookRequest(t, e, otherSecret, providerPayload)

	require.NoError(t, controller.HandleProviderWebhook(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid webhook signature")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHandleProviderWebhookRejectsMissingHeaders(t *testing.T) {
	setupTestDB(t)
	configs.Configs.Secrets.WebhookSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("test-signing-secret-0123"))

	controller := newWebhookTestController(&fakeDirectory{})

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/webhooks", providerPayload, "")

	require.NoError(t, controller.HandleProviderWebhook(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProviderWebhookIgnoresUnknownEvents(t *testing.T) {
	setupTestDB(t)

	secret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("test-signing-secret-0123"))
	configs.Configs.Secrets.WebhookSecret = secret

	directory := &fakeDirectory{}
	controller := newWebhookTestController(directory)

	e := newTestEcho()
	c, rec := signedWebhookRequest(t, e, secret, `{"type": "organization.created", "data": {"id": "org_1"}}`)

	require.NoError(t, controller.HandleProviderWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ignored event")
	assert.Empty(t, directory.upserted)
}
