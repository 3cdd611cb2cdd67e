package password

import "testing"

func TestHashVerifyRoundTrip(t *testing.T) {
	encoded, err := Hash("correct-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	if !Verify("correct-password", encoded) {
		t.Fatal("expected password to verify")
	}
	if Verify("wrong-password", encoded) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("correct-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	second, err := Hash("correct-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	if first == second {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1$c2FsdA$aGFzaA",
	} {
		if Verify("correct-password", encoded) {
			t.Fatalf("expected malformed hash %q to fail verification", encoded)
		}
	}
}
