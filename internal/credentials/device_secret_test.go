package credentials

import "testing"

func TestGenerateDeviceSecret(t *testing.T) {
	secret, err := GenerateDeviceSecret()
	if err != nil {
		t.Fatalf("GenerateDeviceSecret() error: %v", err)
	}

	if len(secret) != secretBytes*2 {
		t.Errorf("secret length = %d, want %d", len(secret), secretBytes*2)
	}

	for _, c := range secret {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("secret contains non-hex character %q", c)
		}
	}
}

func TestGenerateDeviceSecretIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		secret, err := GenerateDeviceSecret()
		if err != nil {
			t.Fatalf("GenerateDeviceSecret() error: %v", err)
		}
		if seen[secret] {
			t.Fatal("generated a duplicate secret")
		}
		seen[secret] = true
	}
}
