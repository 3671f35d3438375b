package utils

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("testuser123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "testuser123" {
		t.Error("hash should not equal the plaintext password")
	}
	if !CheckPasswordHash("testuser123", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestRandStringBytesMaskImpr(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := RandStringBytesMaskImpr(8)
		if len(s) != 8 {
			t.Fatalf("expected length 8, got %d (%q)", len(s), s)
		}
		seen[s] = true
	}
	if len(seen) < 95 {
		t.Errorf("expected ~100 distinct ids, got %d", len(seen))
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown("**bold** comment"))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %q", out)
	}

	out = string(RenderMarkdown(`<script>alert("x")</script>hello`))
	if strings.Contains(out, "<script>") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
}
