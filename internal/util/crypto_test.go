package util

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := "some-passphrase"
	plain := []byte(`{"transactions":[{"amount":12.34}]}`)

	enc, err := EncryptAES(key, plain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(enc, plain) {
		t.Fatal("ciphertext contains plaintext")
	}

	dec, err := DecryptAES(key, enc)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(dec, plain) {
		t.Fatalf("round trip mismatch: got %q", dec)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	enc, err := EncryptAES("right-key", []byte("hello"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := DecryptAES("wrong-key", enc); err == nil {
		t.Fatal("decrypt with wrong key succeeded")
	}
}

func TestDecryptTruncatedInput(t *testing.T) {
	if _, err := DecryptAES("key", []byte{0x01, 0x02}); err == nil {
		t.Fatal("decrypt of truncated input succeeded")
	}
}
