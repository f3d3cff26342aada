package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(Config{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", c.Model())
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.URL.Path, "models/gemini-2.0-flash:generateContent")
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "Giới thiệu ngắn về nghệ sĩ Đen Vâu.", req.Contents[0].Parts[0].Text)

		resp := generateResponse{
			Candidates: []candidate{
				{Content: content{Parts: []part{{Text: "Đen Vâu là một rapper nổi tiếng."}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "secret", BaseURL: srv.URL})
	require.NoError(t, err)

	text, err := c.Generate(context.Background(), "Giới thiệu ngắn về nghệ sĩ Đen Vâu.")
	require.NoError(t, err)
	assert.Equal(t, "Đen Vâu là một rapper nổi tiếng.", text)
}

func TestGenerate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(generateResponse{
			Error: &generateError{Code: 429, Message: "quota exceeded", Status: "RESOURCE_EXHAUSTED"},
		})
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "secret", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "secret", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	c, err := NewClient(Config{APIKey: "secret"})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "   ")
	assert.Error(t, err)
}

func TestMockGenerator(t *testing.T) {
	m := &MockGenerator{Reply: "canned"}

	text, err := m.Generate(context.Background(), "prompt one")
	require.NoError(t, err)
	assert.Equal(t, "canned", text)
	assert.Equal(t, []string{"prompt one"}, m.Prompts)
}
