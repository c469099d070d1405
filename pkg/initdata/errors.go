package initdata

import "errors"

// Code is a stable machine-readable failure reason.
type Code string

const (
	CodeMissingInitData   Code = "MISSING_INIT_DATA"
	CodeMissingBotToken   Code = "MISSING_BOT_TOKEN"
	CodeMissingHash       Code = "MISSING_HASH"
	CodeHashMismatch      Code = "HASH_MISMATCH"
	CodeInvalidAuthDate   Code = "INVALID_AUTH_DATE"
	CodeExpired           Code = "EXPIRED"
	CodeInvalidJSON       Code = "INVALID_JSON"
	CodeCryptoUnavailable Code = "CRYPTO_UNAVAILABLE"
	CodeInvalidPayload    Code = "INVALID_PAYLOAD"
)

// Sentinel errors, one per code, for errors.Is matching.
var (
	ErrMissingInitData   = errors.New("init data is missing")
	ErrMissingBotToken   = errors.New("bot token is missing")
	ErrMissingHash       = errors.New("hash is missing")
	ErrHashMismatch      = errors.New("hash mismatch")
	ErrInvalidAuthDate   = errors.New("invalid auth date")
	ErrExpired           = errors.New("init data expired")
	ErrInvalidJSON       = errors.New("invalid json field")
	ErrCryptoUnavailable = errors.New("crypto primitive unavailable")
	ErrInvalidPayload    = errors.New("invalid payload")
)

var codeErrors = map[Code]error{
	CodeMissingInitData:   ErrMissingInitData,
	CodeMissingBotToken:   ErrMissingBotToken,
	CodeMissingHash:       ErrMissingHash,
	CodeHashMismatch:      ErrHashMismatch,
	CodeInvalidAuthDate:   ErrInvalidAuthDate,
	CodeExpired:           ErrExpired,
	CodeInvalidJSON:       ErrInvalidJSON,
	CodeCryptoUnavailable: ErrCryptoUnavailable,
	CodeInvalidPayload:    ErrInvalidPayload,
}

// Error is the error form of a failed Result.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Unwrap exposes the sentinel for the code, so errors.Is(err, ErrExpired) works.
func (e *Error) Unwrap() error {
	return codeErrors[e.Code]
}
