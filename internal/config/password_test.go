package config

import (
	"strings"
	"sync"
	"testing"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     int
		pepper   string
		wantCost int
		wantErr  bool
	}{
		{"default cost", 0, "", 12, false},
		{"min cost", 10, "", 10, false},
		{"max cost", 14, "", 14, false},
		{"with pepper", 11, "pepper", 11, false},
		{"cost too low", 9, "", 0, true},
		{"cost too high", 15, "", 0, true},
		{"negative cost", -1, "", 0, true},
		{"pepper too long", 10, strings.Repeat("p", 33), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := NewPasswordConfig(tt.cost, tt.pepper)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewPasswordConfig(%d) expected error", tt.cost)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPasswordConfig() error = %v", err)
			}
			if config.BcryptCost != tt.wantCost {
				t.Errorf("BcryptCost = %d, want %d", config.BcryptCost, tt.wantCost)
			}
			if config.Pepper != tt.pepper {
				t.Errorf("Pepper = %q, want %q", config.Pepper, tt.pepper)
			}
		})
	}
}

func TestPasswordConfig_HashPassword(t *testing.T) {
	config, err := NewPasswordConfig(10, "")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	password := "test-password-123"
	hash, err := config.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Error("HashPassword() returned an unusable hash")
	}

	// bcrypt salts every hash
	hash2, err := config.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == hash2 {
		t.Error("HashPassword() should produce different hashes for same password (salt)")
	}
}

func TestPasswordConfig_VerifyPassword(t *testing.T) {
	config, err := NewPasswordConfig(10, "")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	password := "test-password-123"
	hash, err := config.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !config.VerifyPassword(password, hash) {
		t.Error("VerifyPassword() should return true for correct password")
	}
	if config.VerifyPassword("wrong-password", hash) {
		t.Error("VerifyPassword() should return false for incorrect password")
	}
	if config.VerifyPassword(password, "not-a-bcrypt-hash") {
		t.Error("VerifyPassword() should return false for a malformed hash")
	}
}

func TestPasswordConfig_VerifyPassword_WithPepper(t *testing.T) {
	config, err := NewPasswordConfig(10, "test-pepper-123")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	password := "test-password-123"
	hash, err := config.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !config.VerifyPassword(password, hash) {
		t.Error("VerifyPassword() should return true for correct password with pepper")
	}

	noPepper, err := NewPasswordConfig(10, "")
	if err != nil {
		t.Fatalf("Failed to create config without pepper: %v", err)
	}
	if noPepper.VerifyPassword(password, hash) {
		t.Error("VerifyPassword() should return false when pepper is removed")
	}

	rotated, err := NewPasswordConfig(10, "another-pepper")
	if err != nil {
		t.Fatalf("Failed to create rotated config: %v", err)
	}
	if rotated.VerifyPassword(password, hash) {
		t.Error("VerifyPassword() should return false after pepper rotation")
	}
}

func TestPasswordConfig_PasswordExceeding72Bytes(t *testing.T) {
	config, err := NewPasswordConfig(10, "")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	if _, err := config.HashPassword(strings.Repeat("a", 73)); err == nil {
		t.Error("HashPassword() should reject passwords longer than 72 bytes")
	}
}

func TestPasswordConfig_MaxPasswordBytes(t *testing.T) {
	tests := []struct {
		name   string
		pepper string
		want   int
	}{
		{"no pepper", "", 72},
		{"short pepper", "pepper", 66},
		{"max pepper", strings.Repeat("p", 32), 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := NewPasswordConfig(10, tt.pepper)
			if err != nil {
				t.Fatalf("Failed to create config: %v", err)
			}
			if got := config.MaxPasswordBytes(); got != tt.want {
				t.Errorf("MaxPasswordBytes() = %d, want %d", got, tt.want)
			}
			if _, err := config.HashPassword(strings.Repeat("a", tt.want)); err != nil {
				t.Errorf("HashPassword() rejected a password of %d bytes: %v", tt.want, err)
			}
		})
	}
}

func TestPasswordConfig_ConcurrentAccess(t *testing.T) {
	config, err := NewPasswordConfig(10, "pepper")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pw := strings.Repeat("x", i+1)
			hash, err := config.HashPassword(pw)
			if err != nil {
				errs <- err.Error()
				return
			}
			if !config.VerifyPassword(pw, hash) {
				errs <- "hash did not verify for " + pw
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func BenchmarkHashPassword_Cost10(b *testing.B) {
	config, err := NewPasswordConfig(10, "")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = config.HashPassword("benchmark-password")
	}
}

func BenchmarkVerifyPassword(b *testing.B) {
	config, err := NewPasswordConfig(10, "")
	if err != nil {
		b.Fatal(err)
	}
	hash, err := config.HashPassword("benchmark-password")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		config.VerifyPassword("benchmark-password", hash)
	}
}
