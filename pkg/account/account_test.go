package account

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
)

const (
	testEd25519Key     = "d409fcb475960417684d0bfe4c424a13c9e6db58fdff1d5635f11370ded185e9"
	testEd25519Public  = "0xaf79a756b9c1fdfd721ff6e5c4f3f5278c33c0bb53cfbb2f1d5dc4a71b745add"
	testEd25519Address = "0x5e0227d5ba4ccfa01fad0d119b2b5b6edb134a6405f87e0441229c79f33e348e"

	// Private key 1 maps to the curve generator.
	testSecp256k1Key     = "secp256k1-priv-0x0000000000000000000000000000000000000000000000000000000000000001"
	testSecp256k1Address = "0xd27beca0d8d20fa2ce444c7beab733b080d020711abcb65b2cb991868fb8fddb"
)

func TestEd25519AccountAddress(t *testing.T) {
	for _, raw := range []string{testEd25519Key, "0x" + testEd25519Key, "ed25519-priv-0x" + testEd25519Key} {
		account, err := NewEd25519Account(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if account.Address() != testEd25519Address {
			t.Fatalf("unexpected address: %s", account.Address())
		}
		if account.PublicKeyHex() != testEd25519Public {
			t.Fatalf("unexpected public key: %s", account.PublicKeyHex())
		}
	}
}

func TestEd25519AccountSign(t *testing.T) {
	account, err := NewEd25519Account(testEd25519Key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	message := []byte("signing message")
	signature, err := account.Sign(message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signature.Type != "ed25519_signature" {
		t.Fatalf("unexpected signature type: %s", signature.Type)
	}

	publicKey := mustHex(t, signature.PublicKey.(string))
	raw := mustHex(t, signature.Signature.(string))
	if !ed25519.Verify(ed25519.PublicKey(publicKey), message, raw) {
		t.Fatal("signature does not verify")
	}

	if _, err := account.Sign(nil); err == nil {
		t.Fatal("expected error for empty message")
	}
}

func TestGenerateEd25519AccountRoundTrip(t *testing.T) {
	generated, err := GenerateEd25519Account()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(generated.PrivateKeyHex(), "ed25519-priv-0x") {
		t.Fatalf("unexpected private key format: %s", generated.PrivateKeyHex())
	}

	parsed, err := NewEd25519Account(generated.PrivateKeyHex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Address() != generated.Address() {
		t.Fatalf("address mismatch: %s != %s", parsed.Address(), generated.Address())
	}
}

func TestSecp256k1AccountAddress(t *testing.T) {
	account, err := NewSecp256k1Account(testSecp256k1Key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Address() != testSecp256k1Address {
		t.Fatalf("unexpected address: %s", account.Address())
	}
	if !strings.HasPrefix(account.PublicKeyHex(), "0x0479be667ef9dcbbac55a06295ce870b07") {
		t.Fatalf("unexpected public key: %s", account.PublicKeyHex())
	}
}

func TestSecp256k1AccountSign(t *testing.T) {
	account, err := NewSecp256k1Account(testSecp256k1Key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	message := []byte("signing message")
	signature, err := account.Sign(message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signature.Type != "single_sender" {
		t.Fatalf("unexpected signature type: %s", signature.Type)
	}

	value, ok := signature.Signature.(ledger.KeyValue)
	if !ok || value.Type != "secp256k1_ecdsa" {
		t.Fatalf("unexpected signature payload: %#v", signature.Signature)
	}
	compact := mustHex(t, value.Value)
	if len(compact) != 64 {
		t.Fatalf("expected 64-byte signature, got %d", len(compact))
	}
	if !account.Verify(message, compact) {
		t.Fatal("signature does not verify")
	}
	if account.Verify([]byte("other message"), compact) {
		t.Fatal("signature verified for a different message")
	}
}

func TestNewSecp256k1AccountRejectsBadKeys(t *testing.T) {
	for _, raw := range []string{"", "secp256k1-priv-0xzz", "secp256k1-priv-0x0102"} {
		if _, err := NewSecp256k1Account(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestFromPrivateKeyPicksScheme(t *testing.T) {
	signer, err := FromPrivateKey(testSecp256k1Key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := signer.(*Secp256k1Account); !ok {
		t.Fatalf("expected secp256k1 account, got %T", signer)
	}

	signer, err = FromPrivateKey(testEd25519Key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := signer.(*Ed25519Account); !ok {
		t.Fatalf("expected ed25519 account, got %T", signer)
	}
}

func TestSecp256k1SignatureMatchesLowSECDSA(t *testing.T) {
	account, err := NewSecp256k1Account(testSecp256k1Key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	message := []byte("signing message")
	signature, err := account.Sign(message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	compact := mustHex(t, signature.Signature.(ledger.KeyValue).Value)

	digest := sha3.Sum256(message)
	expected := ecdsa.Sign(account.key, digest[:])
	r, s := expected.R(), expected.S()
	rBytes, sBytes := r.Bytes(), s.Bytes()
	if !bytes.Equal(compact[:32], rBytes[:]) || !bytes.Equal(compact[32:], sBytes[:]) {
		t.Fatalf("compact signature %x does not match r=%x s=%x", compact, rBytes, sBytes)
	}

	var parsedS btcec.ModNScalar
	parsedS.SetByteSlice(compact[32:])
	if parsedS.IsOverHalfOrder() {
		t.Fatal("expected low-S signature")
	}
}

func mustHex(t *testing.T, value string) []byte {
	t.Helper()
	decoded, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		t.Fatalf("invalid hex %q: %v", value, err)
	}
	return decoded
}
