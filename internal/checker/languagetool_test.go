package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const ltBody = `{
	"software": {"name": "LanguageTool"},
	"matches": [
		{
			"message": "Possible spelling mistake found.",
			"offset": 4,
			"length": 5,
			"replacements": [{"value": "house"}, {"value": "horse"}, {"value": "hose"}, {"value": "hours"}],
			"context": {"text": "The housse is big.", "offset": 4, "length": 5},
			"rule": {"id": "MORFOLOGIK_RULE_EN_GB"}
		},
		{
			"message": "Use \"an\" instead of \"a\".",
			"offset": 20,
			"length": 1,
			"replacements": [{"value": "an"}],
			"context": {"text": "...is big. It is a apple.", "offset": 17, "length": 1},
			"rule": {"id": "EN_A_VS_AN"}
		}
	]
}`

func TestLanguageToolClient_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/check" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("language"); got != "en-GB" {
			t.Errorf("language = %q, want en-GB", got)
		}
		if got := r.PostForm.Get("text"); !strings.HasPrefix(got, "The housse") {
			t.Errorf("unexpected text %q", got)
		}
		if r.PostForm.Get("apiKey") != "" {
			t.Error("apiKey should be omitted without credentials")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ltBody))
	}))
	defer srv.Close()

	c := NewLanguageToolClient(srv.URL+"/v2/", "en-GB", 5*time.Second)
	matches, err := c.Check(context.Background(), "The housse is big. It is a apple.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	first := matches[0]
	if first.Message != "Possible spelling mistake found." {
		t.Errorf("Message = %q", first.Message)
	}
	if first.Context != "The housse is big." {
		t.Errorf("Context = %q", first.Context)
	}
	if len(first.Replacements) != MaxReplacements {
		t.Errorf("len(Replacements) = %d, want %d", len(first.Replacements), MaxReplacements)
	}
	if first.Replacements[0] != "house" || first.Replacements[2] != "hose" {
		t.Errorf("Replacements out of order: %v", first.Replacements)
	}
	if first.RuleID != "MORFOLOGIK_RULE_EN_GB" || first.Offset != 4 || first.Length != 5 {
		t.Errorf("unexpected rule/offset: %+v", first)
	}
	if matches[1].RuleID != "EN_A_VS_AN" {
		t.Errorf("matches not in service order: %+v", matches)
	}
}

func TestLanguageToolClient_Credentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("username") != "user@example.com" || r.PostForm.Get("apiKey") != "secret" {
			t.Errorf("credentials not forwarded: %v", r.PostForm)
		}
		w.Write([]byte(`{"matches": []}`))
	}))
	defer srv.Close()

	c := NewLanguageToolClient(srv.URL, "en-GB", time.Second, WithCredentials("user@example.com", "secret"))
	matches, err := c.Check(context.Background(), "Fine text.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestLanguageToolClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limit exceeded"))
	}))
	defer srv.Close()

	c := NewLanguageToolClient(srv.URL, "en-GB", time.Second)
	_, err := c.Check(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error for 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should mention status: %v", err)
	}
}

func TestLanguageToolClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"matches": []}`))
	}))
	defer srv.Close()

	c := NewLanguageToolClient(srv.URL, "en-GB", 50*time.Millisecond)
	if _, err := c.Check(context.Background(), "text"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestLanguageToolClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/languages" {
			w.Write([]byte(`[{"name":"English (GB)","code":"en","longCode":"en-GB"}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if err := NewLanguageToolClient(srv.URL, "en-GB", time.Second).Health(context.Background()); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}
	if err := NewLanguageToolClient(srv.URL+"/missing", "en-GB", time.Second).Health(context.Background()); err == nil {
		t.Error("expected health failure on 404")
	}
}
