package crypto

import (
	"strings"
	"testing"
)

func newTestTokenizer(t *testing.T, previous ...string) *Tokenizer {
	t.Helper()
	tok, err := NewTokenizer("test-passphrase", "test-salt", previous...)
	if err != nil {
		t.Fatalf("NewTokenizer returned error: %v", err)
	}
	return tok
}

func TestTokenizeRoundTrip(t *testing.T) {
	tok := newTestTokenizer(t)

	inputs := []string{
		"1234567890",
		"GB29NWBK60161331926819",
		"x",
		"a string that is longer than one aes block so padding spans blocks",
	}

	for _, input := range inputs {
		token, err := tok.Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q) returned error: %v", input, err)
		}
		if token == "" {
			t.Fatalf("Tokenize(%q) returned empty token", input)
		}

		parts := strings.Split(token, ":")
		if len(parts) != 2 {
			t.Fatalf("token %q does not have two hex parts", token)
		}

		got, err := tok.Detokenize(token)
		if err != nil {
			t.Fatalf("Detokenize returned error: %v", err)
		}
		if got != input {
			t.Fatalf("Detokenize = %q, want %q", got, input)
		}
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	tok := newTestTokenizer(t)

	token, err := tok.Tokenize("")
	if err != nil {
		t.Fatalf("Tokenize(\"\") returned error: %v", err)
	}
	if token != "" {
		t.Fatalf("Tokenize(\"\") = %q, want empty", token)
	}

	plain, err := tok.Detokenize("")
	if err != nil || plain != "" {
		t.Fatalf("Detokenize(\"\") = %q, %v, want empty, nil", plain, err)
	}
}

func TestTokenizeFreshIVPerCall(t *testing.T) {
	tok := newTestTokenizer(t)

	first, err := tok.Tokenize("1234567890")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	second, err := tok.Tokenize("1234567890")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if first == second {
		t.Fatalf("two tokenizations of the same input produced the same token")
	}
}

func TestDetokenizeMalformedTokens(t *testing.T) {
	tok := newTestTokenizer(t)

	bad := []string{
		"no-delimiter",
		"one:two:three",
		"zz:1234",                                // bad hex iv
		"00112233445566778899aabbccddeeff:zzzz",  // bad hex ciphertext
		"0011:00112233445566778899aabbccddeeff",  // short iv
		"00112233445566778899aabbccddeeff:0011",  // ciphertext not block aligned
	}

	for _, token := range bad {
		if _, err := tok.Detokenize(token); err == nil {
			t.Fatalf("Detokenize(%q) succeeded, want error", token)
		}
	}
}

func TestDetokenizeWrongKey(t *testing.T) {
	tok := newTestTokenizer(t)
	other, err := NewTokenizer("different-passphrase", "test-salt")
	if err != nil {
		t.Fatalf("NewTokenizer returned error: %v", err)
	}

	token, err := other.Tokenize("1234567890")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}

	if plain, err := tok.Detokenize(token); err == nil && plain == "1234567890" {
		t.Fatalf("Detokenize with wrong key recovered the plaintext")
	}
}

func TestDetokenizePreviousKeyFallback(t *testing.T) {
	old, err := NewTokenizer("old-passphrase", "test-salt")
	if err != nil {
		t.Fatalf("NewTokenizer returned error: %v", err)
	}
	token, err := old.Tokenize("1234567890")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}

	rotated := newTestTokenizer(t, "old-passphrase")
	got, err := rotated.Detokenize(token)
	if err != nil {
		t.Fatalf("Detokenize after rotation returned error: %v", err)
	}
	if got != "1234567890" {
		t.Fatalf("Detokenize after rotation = %q, want %q", got, "1234567890")
	}

	// New tokens mint under the active key and still round-trip.
	fresh, err := rotated.Tokenize("0987654321")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if got, err := rotated.Detokenize(fresh); err != nil || got != "0987654321" {
		t.Fatalf("round trip under rotated tokenizer = %q, %v", got, err)
	}
}

func TestMask(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"1234567890", "******7890"},
		{"1234", "1234"},
		{"123", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := Mask(c.input); got != c.want {
			t.Fatalf("Mask(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
