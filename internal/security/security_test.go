package security

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "rahasia123" {
		t.Fatal("hash must not equal the password")
	}

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{name: "match", hash: hash, password: "rahasia123", want: true},
		{name: "mismatch", hash: hash, password: "rahasia124", want: false},
		{name: "empty password", hash: hash, password: "", want: false},
		{name: "malformed hash", hash: "not-a-hash", password: "rahasia123", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.hash, tt.password); got != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Issue(42, "parent@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() = %d, want 42", userID)
	}
}

func TestTokenIssuerRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	valid, err := issuer.Issue(7, "")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expiredIssuer := NewTokenIssuer("secret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue(7, "")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: mustIssue(t, NewTokenIssuer("other", time.Hour), 7)},
		{name: "expired", token: expired},
		{name: "tampered", token: swapSignature(mustIssue(t, issuer, 8), valid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

// swapSignature puts the signature of signed onto the header and claims of token
func swapSignature(token, signed string) string {
	body := token[:strings.LastIndex(token, ".")]
	sig := signed[strings.LastIndex(signed, ".")+1:]
	return body + "." + sig
}

func mustIssue(t *testing.T, ti *TokenIssuer, userID int64) string {
	t.Helper()
	token, err := ti.Issue(userID, "")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return token
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request in the window should be rejected")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other clients have their own budget")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Error("budget should refill after the window")
	}

	now = now.Add(5 * time.Minute)
	rl.prune()
	rl.mu.Lock()
	remaining := len(rl.visitors)
	rl.mu.Unlock()
	if remaining != 0 {
		t.Errorf("expected idle visitors to be pruned, %d left", remaining)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.1"}, remote: "127.0.0.1:5000", expected: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "10.0.0.2"}, remote: "127.0.0.1:5000", expected: "10.0.0.2"},
		{name: "remote addr", remote: "192.168.1.9:41000", expected: "192.168.1.9"},
		{name: "remote addr without port", remote: "192.168.1.9", expected: "192.168.1.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r); got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}
