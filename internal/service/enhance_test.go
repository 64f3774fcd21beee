package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yashovardan8harit/caption-backend/internal/config"
	"github.com/yashovardan8harit/caption-backend/internal/domain"
)

func TestCleanCaption(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain caption untouched",
			input: "A cat basking in golden light",
			want:  "A cat basking in golden light",
		},
		{
			name:  "enhanced caption prefix",
			input: "Enhanced caption: Just a cat judging your life choices 😹",
			want:  "Just a cat judging your life choices 😹",
		},
		{
			name:  "caption prefix",
			input: "Caption: Sunset over the pier",
			want:  "Sunset over the pier",
		},
		{
			name:  "heres prefix",
			input: "Here's a dreamy take on your photo",
			want:  "a dreamy take on your photo",
		},
		{
			name:  "here is prefix",
			input: "Here is the moment everything changed",
			want:  "the moment everything changed",
		},
		{
			name:  "case insensitive prefix",
			input: "ENHANCED CAPTION: Loud and proud",
			want:  "Loud and proud",
		},
		{
			name:  "leading colon stripped",
			input: ": Quiet morning energy",
			want:  "Quiet morning energy",
		},
		{
			name:  "surrounding whitespace",
			input: "  Caption:   Rainy day vibes  ",
			want:  "Rainy day vibes",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanCaption(tt.input)
			if got != tt.want {
				t.Errorf("cleanCaption(%q) = %q, want %q", tt.input, got, tt.want)
			}

			// One pass must be enough.
			if again := cleanCaption(got); again != got {
				t.Errorf("cleanCaption not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func newEnhanceServiceForTest(baseURL string) *EnhanceService {
	return NewEnhanceService(&config.EnhanceConfig{
		BaseURL:     baseURL,
		Model:       "llama-3.3-70b-versatile",
		APIKey:      "test-key",
		Temperature: 0.7,
		MaxTokens:   200,
		Timeout:     5 * time.Second,
	})
}

func TestEnhance_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Caption: Chasing sunsets and second chances"}}]}`))
	}))
	defer server.Close()

	svc := newEnhanceServiceForTest(server.URL)
	result := svc.Enhance(context.Background(), "a sunset over the ocean", domain.StylePoetic, "")

	if !result.Enhanced {
		t.Fatalf("expected enhanced result, got reason %q", result.Reason)
	}
	if result.Text != "Chasing sunsets and second chances" {
		t.Errorf("unexpected text %q", result.Text)
	}
}

func TestEnhance_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "api error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"rate_limit"}}`))
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"choices":[]}`))
			},
		},
		{
			name: "empty caption",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"choices":[{"message":{"content":"Caption:"}}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := newEnhanceServiceForTest(server.URL)
			result := svc.Enhance(context.Background(), "a cat", domain.StyleFunny, "")

			if result.Enhanced {
				t.Fatalf("expected failure, got text %q", result.Text)
			}
			if result.Reason == "" {
				t.Error("expected a failure reason")
			}
		})
	}
}

func TestEnhance_Unreachable(t *testing.T) {
	svc := newEnhanceServiceForTest("http://127.0.0.1:1")
	result := svc.Enhance(context.Background(), "a cat", domain.StyleFunny, "")

	if result.Enhanced {
		t.Fatal("expected failure against unreachable endpoint")
	}
	if result.Reason == "" {
		t.Error("expected a failure reason")
	}
}
