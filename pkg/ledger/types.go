package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	EntryFunctionPayloadType = "entry_function_payload"
	PendingTransactionType   = "pending_transaction"
	WriteResourceChangeType  = "write_resource"
)

type ViewRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

type EntryFunctionPayload struct {
	Type          string   `json:"type"`
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

type LedgerInfo struct {
	ChainID         uint8  `json:"chain_id"`
	Epoch           string `json:"epoch"`
	LedgerVersion   string `json:"ledger_version"`
	LedgerTimestamp string `json:"ledger_timestamp"`
	BlockHeight     string `json:"block_height"`
	NodeRole        string `json:"node_role"`
}

type AccountInfo struct {
	SequenceNumber    string `json:"sequence_number"`
	AuthenticationKey string `json:"authentication_key"`
}

// Sequence returns the account sequence number as an integer.
func (a AccountInfo) Sequence() (uint64, error) {
	value, err := strconv.ParseUint(a.SequenceNumber, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence number %q: %w", a.SequenceNumber, err)
	}
	return value, nil
}

type MoveResource struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type WriteSetChange struct {
	Type         string        `json:"type"`
	Address      string        `json:"address,omitempty"`
	StateKeyHash string        `json:"state_key_hash,omitempty"`
	Data         *MoveResource `json:"data,omitempty"`
}

type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type Transaction struct {
	Type           string           `json:"type"`
	Hash           string           `json:"hash"`
	Version        string           `json:"version,omitempty"`
	Sender         string           `json:"sender,omitempty"`
	SequenceNumber string           `json:"sequence_number,omitempty"`
	Success        bool             `json:"success"`
	VMStatus       string           `json:"vm_status,omitempty"`
	GasUsed        string           `json:"gas_used,omitempty"`
	Changes        []WriteSetChange `json:"changes,omitempty"`
	Events         []Event          `json:"events,omitempty"`
}

// IsPending reports whether the transaction has not been committed yet.
func (t Transaction) IsPending() bool {
	return t.Type == PendingTransactionType
}

// GasUsedUnits parses the gas_used field. Pending transactions report zero.
func (t Transaction) GasUsedUnits() (uint64, error) {
	if t.GasUsed == "" {
		return 0, nil
	}
	return strconv.ParseUint(t.GasUsed, 10, 64)
}

// VersionNumber parses the committed ledger version.
func (t Transaction) VersionNumber() (uint64, error) {
	if t.Version == "" {
		return 0, nil
	}
	return strconv.ParseUint(t.Version, 10, 64)
}

type UnsignedTransaction struct {
	Sender                  string               `json:"sender"`
	SequenceNumber          string               `json:"sequence_number"`
	MaxGasAmount            string               `json:"max_gas_amount"`
	GasUnitPrice            string               `json:"gas_unit_price"`
	ExpirationTimestampSecs string               `json:"expiration_timestamp_secs"`
	Payload                 EntryFunctionPayload `json:"payload"`
}

// KeyValue is the tagged key or signature encoding used by single-key
// account signatures.
type KeyValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// TransactionSignature is the authenticator attached to a submission.
// PublicKey and Signature are hex strings for ed25519 signatures and KeyValue
// objects for single-key signatures.
type TransactionSignature struct {
	Type      string `json:"type"`
	PublicKey any    `json:"public_key"`
	Signature any    `json:"signature"`
}

type SignedTransaction struct {
	UnsignedTransaction
	Signature TransactionSignature `json:"signature"`
}

type nodeError struct {
	Message     string `json:"message"`
	ErrorCode   string `json:"error_code"`
	VMErrorCode int    `json:"vm_error_code"`
}
