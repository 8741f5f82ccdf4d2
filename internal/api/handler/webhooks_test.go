package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"anontalk/backend/internal/vk"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestVKWebhookConfirmation verifies the Callback API handshake: VK
// sends a confirmation event and expects the code as the plain body.
func TestVKWebhookConfirmation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{VKBot: vk.NewBotService(nil, nil, nil, "conf-code-42")}
	r := gin.New()
	r.POST("/webhook/vk", h.VKWebhook)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/vk",
		strings.NewReader(`{"type":"confirmation","group_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "conf-code-42", w.Body.String())
}

// TestVKWebhookBadPayload verifies malformed JSON is rejected.
func TestVKWebhookBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{VKBot: vk.NewBotService(nil, nil, nil, "x")}
	r := gin.New()
	r.POST("/webhook/vk", h.VKWebhook)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/vk", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
