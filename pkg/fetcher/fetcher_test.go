package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dtnitsch/llm-blog-writer/models"
)

func TestGetHtmlBytes(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><title>ok</title></html>"))
		case "/big":
			_, _ = w.Write([]byte("0123456789abcdef"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(models.FetchConfig{UserAgent: "test-agent/1.0", MaxBodyBytes: 10})

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "success", path: "/ok", want: "<html><tit"},
		{name: "body capped", path: "/big", want: "0123456789"},
		{name: "not found", path: "/missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.GetHtmlBytes(context.Background(), srv.URL+tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetHtmlBytes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, models.ErrFetchFailure) {
					t.Errorf("error %v does not wrap ErrFetchFailure", err)
				}
				return
			}
			if string(got) != tt.want {
				t.Errorf("GetHtmlBytes() = %q, want %q", got, tt.want)
			}
			if gotUA != "test-agent/1.0" {
				t.Errorf("User-Agent = %q, want %q", gotUA, "test-agent/1.0")
			}
		})
	}
}

func TestGetHtmlBytes_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewFetcher(models.FetchConfig{Timeout: 20 * time.Millisecond})
	_, err := f.GetHtmlBytes(context.Background(), srv.URL)
	if !errors.Is(err, models.ErrFetchFailure) {
		t.Fatalf("GetHtmlBytes() error = %v, want ErrFetchFailure", err)
	}
}

func TestGetHtmlBytes_NetworkError(t *testing.T) {
	f := NewFetcher(models.FetchConfig{})
	_, err := f.GetHtmlBytes(context.Background(), "http://127.0.0.1:1/unreachable")
	if !errors.Is(err, models.ErrFetchFailure) {
		t.Fatalf("GetHtmlBytes() error = %v, want ErrFetchFailure", err)
	}
}

func TestNewFetcher_Defaults(t *testing.T) {
	f := NewFetcher(models.FetchConfig{})
	if f.userAgent != models.DefaultUserAgent {
		t.Errorf("userAgent = %q, want default", f.userAgent)
	}
	if f.client.Timeout != models.DefaultFetchTimeout {
		t.Errorf("client.Timeout = %v, want %v", f.client.Timeout, models.DefaultFetchTimeout)
	}
	if f.maxBodyBytes != models.DefaultMaxBodyBytes {
		t.Errorf("maxBodyBytes = %d, want %d", f.maxBodyBytes, models.DefaultMaxBodyBytes)
	}
}
