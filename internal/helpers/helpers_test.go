package helpers

import "testing"

func TestIsValidMobile(t *testing.T) {
	valid := []string{
		"+919876543210",
		"919876543210",
		"+14155552671",
	}
	for _, mobile := range valid {
		if !IsValidMobile(mobile) {
			t.Errorf("IsValidMobile(%q) = false, want true", mobile)
		}
	}

	invalid := []string{
		"",
		"12345",
		"+0987654321",
		"98765-43210",
		"+91 9876543210",
		"abcdefghijk",
	}
	for _, mobile := range invalid {
		if IsValidMobile(mobile) {
			t.Errorf("IsValidMobile(%q) = true, want false", mobile)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	if !IsValidEmail("user@example.com") {
		t.Error("IsValidEmail(user@example.com) = false, want true")
	}
	for _, email := range []string{"", "user", "user@", "@example.com", "user@example"} {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}
