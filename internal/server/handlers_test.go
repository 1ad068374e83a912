package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/sections"
)

func TestAddressFromPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sections/experience/acme/backend", nil)
	req.SetPathValue("type", "experience")
	req.SetPathValue("key", "acme")
	req.SetPathValue("flavor", "backend")

	assert.Equal(t, sections.Address{Type: "experience", Key: "acme", Flavor: "backend"}, addressFromPath(req))
}

func TestExtractClientID(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.168.1.5:54321",
			want:       "192.168.1.5",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2, 10.0.0.3"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			want:       "198.51.100.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sections", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extractClientID(req))
		})
	}
}

func TestConversationHistory(t *testing.T) {
	now := time.Now()
	messages := []db.OutreachMessage{
		{Direction: db.DirectionSent, Content: "Hi, I saw your posting.", CreatedAt: now},
		{Direction: db.DirectionReceived, Content: "Thanks for reaching out!", CreatedAt: now},
	}

	history := conversationHistory(messages)
	assert.Contains(t, history, "[ME]: Hi, I saw your posting.")
	assert.Contains(t, history, "[THEM]: Thanks for reaching out!")
}

func TestConversationHistoryEmpty(t *testing.T) {
	assert.Equal(t, "(no messages yet)", conversationHistory(nil))
}
