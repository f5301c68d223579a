package account

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

// Authentication key scheme suffixes.
const (
	ed25519SchemeByte    byte = 0x00
	singleKeySchemeByte  byte = 0x02
	anyKeySecp256k1Tag   byte = 0x01
	uncompressedKeyBytes      = 65
)

// Signer produces the authenticator for a signing message.
type Signer interface {
	Address() string
	Sign(message []byte) (ledger.TransactionSignature, error)
}

// FromPrivateKey builds a Signer, picking the scheme from an AIP-80 prefix
// and defaulting to ed25519.
func FromPrivateKey(raw string) (Signer, error) {
	scheme, _ := shared.SplitPrivateKeyScheme(raw)
	switch scheme {
	case shared.KeySchemeSecp256k1:
		return NewSecp256k1Account(raw)
	case shared.KeySchemeEd25519:
		return NewEd25519Account(raw)
	default:
		return nil, fmt.Errorf("unsupported key scheme %q", scheme)
	}
}

func deriveAddress(material []byte, scheme byte) string {
	input := make([]byte, 0, len(material)+1)
	input = append(input, material...)
	input = append(input, scheme)
	digest := sha3.Sum256(input)
	return "0x" + hex.EncodeToString(digest[:])
}

func hexWithPrefix(value []byte) string {
	return "0x" + hex.EncodeToString(value)
}

func decodeKeyHex(candidate string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(candidate), "0x"), "0X")
	if trimmed == "" {
		return nil, fmt.Errorf("private key cannot be empty")
	}
	return hex.DecodeString(trimmed)
}
