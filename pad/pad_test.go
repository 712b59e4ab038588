package pad

import (
	"errors"
	"testing"
)

func TestEncryptKnownVector(t *testing.T) {
	// "HI" is 0100100001001001; the key "1010" stretches to
	// 1010101010101010, so the ciphertext is 1110001011100011, i.e. code
	// points 226 and 227.
	got, err := Encrypt("HI", "1010")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	want := string([]rune{226, 227})
	if got != want {
		t.Errorf("Encrypt(HI, 1010) = %q, want %q", got, want)
	}
	back, err := Decrypt(got, "1010")
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if back != "HI" {
		t.Errorf("Decrypt round trip = %q, want HI", back)
	}
}

func TestRoundTrip(t *testing.T) {
	keys := []string{"1", "0", "1010", "1100111000101", "0100100001001001"}
	texts := []string{
		"",
		"H",
		"Hello, World!",
		"caffé au lait", // code points up to 0xFF are in range
		"\u0000\u0001\u00fe\u00ff", // encoding edge: lowest and highest code points
	}
	for _, key := range keys {
		for _, text := range texts {
			ct, err := Encrypt(text, key)
			if err != nil {
				t.Fatalf("Encrypt(%q, %q): %v", text, key, err)
			}
			pt, err := Decrypt(ct, key)
			if err != nil {
				t.Fatalf("Decrypt(%q, %q): %v", ct, key, err)
			}
			if pt != text {
				t.Errorf("round trip with key %q: got %q, want %q", key, pt, text)
			}
		}
	}
}

func TestMismatchedKeysDisagree(t *testing.T) {
	ct, err := Encrypt("attack at dawn", "1010")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	// The two streams differ in every bit position, so decryption cannot
	// coincidentally recover the plaintext.
	pt, err := Decrypt(ct, "0101")
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if pt == "attack at dawn" {
		t.Error("decryption with the wrong key recovered the plaintext")
	}
}

func TestKeyLongerThanMessage(t *testing.T) {
	key := "110011100010111010101010101010101010101010101010"
	ct, err := Encrypt("hi", key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	pt, err := Decrypt(ct, key)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if pt != "hi" {
		t.Errorf("round trip = %q, want hi", pt)
	}
}

func TestOutOfRangeText(t *testing.T) {
	if _, err := Encrypt("snowman ☃", "1010"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestBadKeys(t *testing.T) {
	if _, err := Encrypt("hi", ""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("empty key: err = %v, want ErrEmptyKey", err)
	}
	if _, err := Encrypt("hi", "10a1"); err == nil {
		t.Error("expected error for non-binary key")
	}
}
