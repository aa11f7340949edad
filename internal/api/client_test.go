// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer returns a backend that records every request body and
// answers with handler.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestSubmitAnalysis_Success(t *testing.T) {
	var got map[string]any
	server, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, AnalyzePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"answer":"**bold**"}`)
	})

	client := NewClient(server.URL)
	answer, err := client.SubmitAnalysis(context.Background(), "Time Loop Colony", "Sci-fi", "US, , UK,")

	require.NoError(t, err)
	assert.Equal(t, "**bold**", answer)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Time Loop Colony", got["title_name"])
	assert.Equal(t, "Sci-fi", got["description"])
	assert.Equal(t, []any{"US", "UK"}, got["target_regions"])
}

func TestSubmitAnalysis_OmitsEmptyRegions(t *testing.T) {
	var raw string
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		raw = string(b)
		io.WriteString(w, `{"answer":"ok"}`)
	})

	_, err := NewClient(server.URL).SubmitAnalysis(context.Background(), "T", "", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title_name":"T"}`, raw)
}

func TestSubmitAnalysis_AnswerNotMutated(t *testing.T) {
	const body = "  ## Heading\n\n- item <b>x</b>\n\n"
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"answer": body})
	})

	answer, err := NewClient(server.URL).SubmitAnalysis(context.Background(), "T", "", "")
	require.NoError(t, err)
	assert.Equal(t, body, answer)
}

func TestSubmitAnalysis_MissingAnswer(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"detail":"nothing here"}`)
	})

	answer, err := NewClient(server.URL).SubmitAnalysis(context.Background(), "T", "", "")
	require.NoError(t, err)
	assert.Equal(t, "", answer)
}

func TestSubmitAnalysis_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			status: http.StatusInternalServerError,
		},
		{
			name: "validation error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				io.WriteString(w, `{"detail":[{"msg":"field required"}]}`)
			},
			status: http.StatusUnprocessableEntity,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `<html>not json</html>`)
			},
		},
		{
			name: "wrong answer type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"answer": 42}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, tt.handler)

			answer, err := NewClient(server.URL).SubmitAnalysis(context.Background(), "T", "", "")

			assert.Equal(t, FallbackMessage, answer)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBackendUnavailable))

			var be *BackendError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, "analyze_title", be.Op)
			assert.Equal(t, tt.status, be.StatusCode)
		})
	}
}

func TestSubmit_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url)

	answer, err := client.SubmitAnalysis(context.Background(), "T", "", "US")
	assert.Equal(t, FallbackMessage, answer)
	assert.True(t, IsBackendUnavailable(err))

	answer, err = client.SubmitChatMessage(context.Background(), "hello", []string{"earlier"})
	assert.Equal(t, FallbackMessage, answer)
	assert.True(t, IsBackendUnavailable(err))
}

func TestSubmitChatMessage_Success(t *testing.T) {
	var got ChatRequest
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ChatPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"session_id":"abc","answer":"Sure.","sources":[{"id":1},"x"]}`)
	})

	answer, err := NewClient(server.URL).SubmitChatMessage(context.Background(), "  pitch me  ", []string{"q1", "a1"})
	require.NoError(t, err)
	assert.Equal(t, "Sure.", answer)
	assert.Equal(t, "pitch me", got.Message)
	assert.Equal(t, []string{"q1", "a1"}, got.History)
}

func TestSubmitChatMessage_EmptyIsIgnored(t *testing.T) {
	server, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"answer":"should not happen"}`)
	})
	client := NewClient(server.URL)

	for _, msg := range []string{"", "  ", "\n\t"} {
		answer, err := client.SubmitChatMessage(context.Background(), msg, []string{"a"})
		assert.ErrorIs(t, err, ErrEmptyMessage)
		assert.Empty(t, answer)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestChat_DecodesSources(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"session_id":"s-1","answer":"a","sources":[{"title":"doc"},2]}`)
	})

	resp, err := NewClient(server.URL).Chat(context.Background(), ChatRequest{Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, "s-1", resp.SessionID)
	assert.Len(t, resp.Sources, 2)
}

func TestSubmit_Cancelled(t *testing.T) {
	release := make(chan struct{})
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	answer, err := NewClient(server.URL).SubmitChatMessage(ctx, "hello", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsBackendUnavailable(err))
	assert.Empty(t, answer)
}

func TestSubmit_CancelledDuringBody(t *testing.T) {
	release := make(chan struct{})
	flushed := make(chan struct{})
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"answer":"partial`))
		w.(http.Flusher).Flush()
		close(flushed)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-flushed
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	answer, err := NewClient(server.URL).SubmitAnalysis(ctx, "T", "", "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsBackendUnavailable(err))
	assert.Empty(t, answer)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	client := NewClient(server.URL).WithTimeout(50 * time.Millisecond)
	answer, err := client.SubmitAnalysis(context.Background(), "T", "", "")
	assert.Equal(t, FallbackMessage, answer)
	assert.True(t, IsBackendUnavailable(err))
}

func TestClient_ResponseTooLarge(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"answer":"`)
		io.WriteString(w, strings.Repeat("x", MaxResponseSize))
		io.WriteString(w, `"}`)
	})

	answer, err := NewClient(server.URL).SubmitAnalysis(context.Background(), "T", "", "")
	assert.Equal(t, FallbackMessage, answer)
	assert.True(t, IsBackendUnavailable(err))
}

func TestClient_StatusAndRebuildIndex(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			io.WriteString(w, `{"status":"ok","message":"StreamIntel360 backend is running","docs":"/docs"}`)
		case r.Method == http.MethodPost && r.URL.Path == RebuildIndexPath:
			io.WriteString(w, `{"status":"ok","message":"Index rebuilt"}`)
		default:
			http.NotFound(w, r)
		}
	})
	client := NewClient(server.URL + "/")

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.OK())
	assert.Equal(t, "/docs", status.Docs)

	admin, err := client.RebuildIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Index rebuilt", admin.Message)
}

func TestClient_SetBaseURL(t *testing.T) {
	first, firstCalls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"answer":"first"}`)
	})
	second, secondCalls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"answer":"second"}`)
	})

	client := NewClient(first.URL)
	answer, _ := client.SubmitAnalysis(context.Background(), "T", "", "")
	assert.Equal(t, "first", answer)

	client.SetBaseURL(second.URL)
	answer, _ = client.SubmitAnalysis(context.Background(), "T", "", "")
	assert.Equal(t, "second", answer)

	assert.Equal(t, int32(1), firstCalls.Load())
	assert.Equal(t, int32(1), secondCalls.Load())
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Zero(t, client.Timeout())

	client.SetTimeout(-time.Second)
	assert.Zero(t, client.Timeout())
}

func TestBackendError_Error(t *testing.T) {
	err := &BackendError{Op: "chat", StatusCode: 502}
	assert.Equal(t, "chat: backend returned HTTP 502", err.Error())

	err = &BackendError{Op: "chat", Err: errors.New("dial tcp: refused")}
	assert.Equal(t, "chat: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
