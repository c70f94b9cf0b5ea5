package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("SHOOTER_TEST_VALUE", "abc")

	if got := GetEnv("SHOOTER_TEST_VALUE", "x"); got != "abc" {
		t.Errorf("GetEnv = %q, want %q", got, "abc")
	}
	if got := GetEnv("SHOOTER_TEST_MISSING", "x"); got != "x" {
		t.Errorf("GetEnv fallback = %q, want %q", got, "x")
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
	}{
		{"valid", "42", 42},
		{"negative", "-7", -7},
		{"empty", "", 5},
		{"garbage", "forty", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHOOTER_TEST_INT", tt.value)
			if got := GetEnvInt("SHOOTER_TEST_INT", 5); got != tt.want {
				t.Errorf("GetEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("SHOOTER_TEST_BOOL", "true")
	if !GetEnvBool("SHOOTER_TEST_BOOL", false) {
		t.Error("GetEnvBool(true) = false")
	}

	t.Setenv("SHOOTER_TEST_BOOL", "nope")
	if GetEnvBool("SHOOTER_TEST_BOOL", false) {
		t.Error("invalid bool should fall back to false")
	}
}
