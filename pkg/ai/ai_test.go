package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseReview(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Review
		wantErr bool
	}{
		{name: "bare", in: `{"completed":true,"xp":30,"feedback":"nice"}`, want: Review{Completed: true, XP: 30, Feedback: "nice"}},
		{name: "fenced", in: "```json\n{\"completed\":false,\"xp\":0,\"feedback\":\"empty\"}\n```", want: Review{Feedback: "empty"}},
		{name: "prose", in: "Sure! {\"completed\":true,\"xp\":12,\"feedback\":\"ok\"} Hope this helps", want: Review{Completed: true, XP: 12, Feedback: "ok"}},
		{name: "no object", in: "I cannot grade this", wantErr: true},
		{name: "broken", in: "{completed: yes}", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReview(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestGatewayService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req struct {
			Model    string        `json:"model"`
			Messages []chatMessage `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Title: Algebra worksheet")
		assert.Contains(t, req.Messages[1].Content, "No description provided")

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": `{"completed":true,"xp":42,"feedback":"Great work"}`}},
			},
		})
	}))
	defer srv.Close()

	g := NewGatewayService(srv.URL, "key", "test-model")
	review, err := g.ReviewHomework(context.Background(), Submission{Title: "Algebra worksheet"})
	require.NoError(t, err)
	assert.True(t, review.Completed)
	assert.Equal(t, 42, review.XP)
}

func TestGatewayServiceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	_, err := NewGatewayService(srv.URL, "key", "m").ReviewHomework(context.Background(), Submission{Title: "x"})
	require.Error(t, err)
	assert.True(t, isQuotaError(err))
}

func TestOllamaService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"response": `{"completed":false,"xp":5,"feedback":"Looks unfinished"}`,
		})
	}))
	defer srv.Close()

	review, err := NewOllamaService(srv.URL, "llama3").ReviewHomework(context.Background(), Submission{Title: "Essay"})
	require.NoError(t, err)
	assert.False(t, review.Completed)
	assert.Equal(t, "Looks unfinished", review.Feedback)
}

type stubReviewer struct {
	review *Review
	err    error
	calls  int
}

func (s *stubReviewer) ReviewHomework(ctx context.Context, sub Submission) (*Review, error) {
	s.calls++
	return s.review, s.err
}

func TestFallbackService(t *testing.T) {
	ok := &Review{Completed: true, XP: 20}

	t.Run("primary succeeds", func(t *testing.T) {
		primary := &stubReviewer{review: ok}
		secondary := &stubReviewer{review: ok}
		_, err := NewFallbackService(primary, secondary, zap.NewNop()).ReviewHomework(context.Background(), Submission{})
		require.NoError(t, err)
		assert.Equal(t, 0, secondary.calls)
	})

	t.Run("connection error falls back", func(t *testing.T) {
		primary := &stubReviewer{err: errors.New("dial tcp 10.0.0.1:443: connection refused")}
		secondary := &stubReviewer{review: ok}
		got, err := NewFallbackService(primary, secondary, zap.NewNop()).ReviewHomework(context.Background(), Submission{})
		require.NoError(t, err)
		assert.Equal(t, ok, got)
		assert.Equal(t, 1, secondary.calls)
	})

	t.Run("other errors do not fall back", func(t *testing.T) {
		primary := &stubReviewer{err: errors.New("decoding review: invalid character")}
		secondary := &stubReviewer{review: ok}
		_, err := NewFallbackService(primary, secondary, zap.NewNop()).ReviewHomework(context.Background(), Submission{})
		require.Error(t, err)
		assert.Equal(t, 0, secondary.calls)
	})
}
