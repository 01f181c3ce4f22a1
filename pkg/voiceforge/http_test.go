package voiceforge

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type errAfterReader struct {
	r   io.Reader
	err error
}

func (e *errAfterReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err == io.EOF {
		return n, e.err
	}
	return n, err
}

func streamResponse(body io.Reader) *http.Response {
	return &http.Response{Body: io.NopCloser(body)}
}

func TestStreamReader(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "plain data lines",
			body: "data: {\"progress\":10}\ndata: {\"progress\":100}\n",
			want: []string{`{"progress":10}`, `{"progress":100}`},
		},
		{
			name: "non-data lines skipped",
			body: ": keepalive\n\ndata: {\"a\":1}\nevent: progress\n",
			want: []string{`{"a":1}`},
		},
		{
			name: "final line without newline",
			body: "data: {\"a\":1}\ndata: {\"b\":2}",
			want: []string{`{"a":1}`, `{"b":2}`},
		},
		{
			name: "empty stream",
			body: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newStreamReader(streamResponse(strings.NewReader(tt.body)))
			var got []string
			for {
				data, done := r.next()
				if done {
					break
				}
				got = append(got, string(data))
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStreamReaderDisconnect(t *testing.T) {
	// A mid-stream transport error ends iteration silently; the events read
	// so far stand.
	body := &errAfterReader{
		r:   strings.NewReader("data: {\"progress\":42}\n"),
		err: errors.New("connection reset"),
	}
	r := newStreamReader(streamResponse(body))

	data, done := r.next()
	if done || string(data) != `{"progress":42}` {
		t.Fatalf("first read = (%q, %v), want event", data, done)
	}
	if _, done := r.next(); !done {
		t.Fatal("expected stream to end after transport error")
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		status     int
		wantDetail string
	}{
		{"detail body", `{"detail":"Audio not found"}`, 404, "Audio not found"},
		{"empty body", ``, 500, "request failed with status 500"},
		{"garbage body", `<html>bad</html>`, 502, "request failed with status 502"},
		{"json without detail", `{"error":"x"}`, 400, "request failed with status 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError([]byte(tt.body), tt.status, "req-1")
			apiErr, ok := AsError(err)
			if !ok {
				t.Fatalf("parseError returned %T, want *Error", err)
			}
			if apiErr.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", apiErr.Detail, tt.wantDetail)
			}
			if apiErr.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", apiErr.HTTPStatus, tt.status)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	if e := (&Error{HTTPStatus: 404}); !e.IsNotFound() || e.IsServerError() {
		t.Error("404 should be not-found only")
	}
	if e := (&Error{HTTPStatus: 422}); !e.IsInvalidRequest() {
		t.Error("422 should be invalid request")
	}
	if e := (&Error{HTTPStatus: 503}); !e.IsUnavailable() || !e.IsServerError() {
		t.Error("503 should be unavailable and server error")
	}
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	err := client.http.request(context.Background(), http.MethodGet, "/api/voice/models", nil, 20*time.Millisecond, nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("IsTimeout(%v) = false, want true", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotReqID, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithAPIKey("secret"))
	if err := client.http.request(context.Background(), http.MethodGet, "/", nil, 0, nil); err != nil {
		t.Fatal(err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReqID == "" {
		t.Error("X-Request-Id not set")
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}
}
