package auth

import "testing"

func TestHashPasswordDistinctSalts(t *testing.T) {
	t.Parallel()

	const plaintext = "correct horse battery staple"

	first, err := HashPassword(plaintext, 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword(plaintext, 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same plaintext are identical; salt not applied per call")
	}

	if err := ComparePassword(first, plaintext); err != nil {
		t.Errorf("ComparePassword(first) error = %v", err)
	}
	if err := ComparePassword(second, plaintext); err != nil {
		t.Errorf("ComparePassword(second) error = %v", err)
	}
}

func TestComparePasswordMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stored string
		tried  string
	}{
		{name: "different password", stored: "pw1", tried: "pw2"},
		{name: "empty attempt", stored: "pw1", tried: ""},
		{name: "prefix attempt", stored: "password", tried: "pass"},
		{name: "case difference", stored: "Password", tried: "password"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hash, err := HashPassword(tt.stored, 4)
			if err != nil {
				t.Fatalf("HashPassword() error = %v", err)
			}
			if err := ComparePassword(hash, tt.tried); err == nil {
				t.Errorf("ComparePassword accepted %q against hash of %q", tt.tried, tt.stored)
			}
		})
	}
}
