package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"buddy-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPicksProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    interface{}
		wantErr bool
	}{
		{name: "default log", cfg: config.Config{}, want: &LogSender{}},
		{name: "sendgrid", cfg: config.Config{MailProvider: "sendgrid", SendgridAPIKey: "k"}, want: &SendgridSender{}},
		{name: "sendgrid without key", cfg: config.Config{MailProvider: "sendgrid"}, wantErr: true},
		{name: "smtp", cfg: config.Config{MailProvider: "smtp", SMTPHost: "localhost", SMTPPort: 25}, want: &SMTPSender{}},
		{name: "smtp without host", cfg: config.Config{MailProvider: "smtp"}, wantErr: true},
		{name: "unknown", cfg: config.Config{MailProvider: "pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			got, err := New(&cfg, zap.NewNop())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestSendgridSender(t *testing.T) {
	var payload map[string]interface{}
	status := http.StatusAccepted

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sendgridEndpoint, r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"errors":[]}`))
	}))
	defer srv.Close()

	s := NewSendgridSender("key", From{Name: "Buddy", Address: "buddy@example.com"})
	s.host = srv.URL

	msg := Message{To: "ada@example.com", ToName: "Ada", Subject: "Digest", HTML: "<p>hi</p>"}
	require.NoError(t, s.Send(context.Background(), msg))

	from := payload["from"].(map[string]interface{})
	assert.Equal(t, "buddy@example.com", from["email"])
	personalizations := payload["personalizations"].([]interface{})
	require.Len(t, personalizations, 1)
	assert.Equal(t, "Digest", personalizations[0].(map[string]interface{})["subject"])

	status = http.StatusInternalServerError
	err := s.Send(context.Background(), msg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSendersHonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	senders := []Sender{
		NewLogSender(zap.NewNop(), From{}),
		NewSendgridSender("k", From{}),
		NewSMTPSender("localhost", 25, "", "", From{}),
	}
	for _, s := range senders {
		assert.ErrorIs(t, s.Send(ctx, Message{To: "a@b.c"}), context.Canceled)
	}
}

func hangingServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendgridSenderStopsAtDeadline(t *testing.T) {
	s := NewSendgridSender("key", From{Address: "buddy@example.com"})
	s.host = hangingServer(t).URL

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := s.Send(ctx, Message{To: "ada@example.com", Subject: "Digest", HTML: "<p>hi</p>"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSendgridSenderRequestTimeout(t *testing.T) {
	s := NewSendgridSender("key", From{Address: "buddy@example.com"})
	s.host = hangingServer(t).URL
	s.timeout = 100 * time.Millisecond

	start := time.Now()
	err := s.Send(context.Background(), Message{To: "ada@example.com", Subject: "Digest", HTML: "<p>hi</p>"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
