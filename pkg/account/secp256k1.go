package account

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

const (
	singleSenderSignatureType = "single_sender"
	secp256k1KeyType          = "secp256k1_ecdsa"
	secp256k1SignatureSize    = 64
)

type Secp256k1Account struct {
	key     *btcec.PrivateKey
	address string
}

// NewSecp256k1Account parses a hex secp256k1 private key, with or without
// the secp256k1-priv- prefix.
func NewSecp256k1Account(raw string) (*Secp256k1Account, error) {
	_, candidate := shared.SplitPrivateKeyScheme(raw)
	decoded, err := decodeKeyHex(candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse secp256k1 private key: %w", err)
	}
	if len(decoded) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("secp256k1 private key must be %d bytes, got %d", btcec.PrivKeyBytesLen, len(decoded))
	}

	key, _ := btcec.PrivKeyFromBytes(decoded)
	return newSecp256k1Account(key), nil
}

// GenerateSecp256k1Account creates an account with a fresh random key.
func GenerateSecp256k1Account() (*Secp256k1Account, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}
	return newSecp256k1Account(key), nil
}

func newSecp256k1Account(key *btcec.PrivateKey) *Secp256k1Account {
	publicKey := key.PubKey().SerializeUncompressed()

	// bcs(AnyPublicKey::Secp256k1Ecdsa) = variant tag, uleb128 length, bytes.
	material := make([]byte, 0, 2+len(publicKey))
	material = append(material, anyKeySecp256k1Tag, byte(uncompressedKeyBytes))
	material = append(material, publicKey...)

	return &Secp256k1Account{
		key:     key,
		address: deriveAddress(material, singleKeySchemeByte),
	}
}

// Address returns the requested value.
func (a *Secp256k1Account) Address() string {
	return a.address
}

// PublicKeyHex returns the uncompressed public key.
func (a *Secp256k1Account) PublicKeyHex() string {
	return hexWithPrefix(a.key.PubKey().SerializeUncompressed())
}

// Sign signs sha3-256(message) and returns the 64-byte r||s signature
// wrapped in a single-key authenticator.
func (a *Secp256k1Account) Sign(message []byte) (ledger.TransactionSignature, error) {
	if len(message) == 0 {
		return ledger.TransactionSignature{}, fmt.Errorf("signing message cannot be empty")
	}

	digest := sha3.Sum256(message)
	// SignCompact prefixes a recovery byte to the low-S r||s.
	compact := ecdsa.SignCompact(a.key, digest[:], false)[1:]

	return ledger.TransactionSignature{
		Type:      singleSenderSignatureType,
		PublicKey: ledger.KeyValue{Type: secp256k1KeyType, Value: a.PublicKeyHex()},
		Signature: ledger.KeyValue{Type: secp256k1KeyType, Value: hexWithPrefix(compact)},
	}, nil
}

// Verify reports whether compact is a valid r||s signature of message.
func (a *Secp256k1Account) Verify(message []byte, compact []byte) bool {
	if len(compact) != secp256k1SignatureSize {
		return false
	}
	var r, s btcec.ModNScalar
	if r.SetByteSlice(compact[:32]) || s.SetByteSlice(compact[32:]) {
		return false
	}
	digest := sha3.Sum256(message)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], a.key.PubKey())
}
