package wiretypes

import "testing"

func TestNameRoundTrip(t *testing.T) {
	cases := []string{"eosio", "alice", "a", "", "abcdefghijklm", "1234", "eosio.token"}
	for _, s := range cases {
		v, err := EncodeName(s)
		if err != nil {
			t.Fatalf("EncodeName(%q): %v", s, err)
		}
		got := DecodeName(v)
		if got != s {
			t.Fatalf("round-trip mismatch: want %q, got %q", s, got)
		}
	}
}

func TestEncodeNameRejectsOverlong(t *testing.T) {
	if _, err := EncodeName("abcdefghijklmn"); err == nil {
		t.Fatal("expected error for a 14-character name")
	}
}
