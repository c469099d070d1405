package initdata

import (
	"crypto/hmac"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// secretKeyLabel is the HMAC key and the bot token is the message when
// deriving the signing key; this order matches what messaging clients sign.
const secretKeyLabel = "WebAppData"

// Field names with special meaning.
const (
	fieldHash         = "hash"
	fieldAuthDate     = "auth_date"
	fieldUser         = "user"
	fieldReceiver     = "receiver"
	fieldChat         = "chat"
	fieldQueryID      = "query_id"
	fieldChatType     = "chat_type"
	fieldChatInstance = "chat_instance"
	fieldStartParam   = "start_param"
	fieldCanSendAfter = "can_send_after"
)

// Verify checks a query-string shaped init data payload against a bot token:
// signature first, then freshness, then the typed parse.
func Verify(raw, botToken string, opts ...Option) Result {
	if strings.TrimSpace(raw) == "" {
		return fail(CodeMissingInitData, "init data is empty")
	}
	if botToken == "" {
		return fail(CodeMissingBotToken, "bot token is empty")
	}
	pairs, err := ParsePairs(raw)
	if err != nil {
		return fail(CodeInvalidPayload, err.Error())
	}
	return verify(pairs, raw, botToken, opts)
}

// VerifyPairs is Verify for init data that was already split into fields.
// Data.Raw is the query-string encoding of pairs in the given order.
func VerifyPairs(pairs []Pair, botToken string, opts ...Option) Result {
	if len(pairs) == 0 {
		return fail(CodeMissingInitData, "init data is empty")
	}
	if botToken == "" {
		return fail(CodeMissingBotToken, "bot token is empty")
	}
	return verify(pairs, EncodePairs(pairs), botToken, opts)
}

func verify(pairs []Pair, raw, botToken string, opts []Option) Result {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	fields := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if _, dup := fields[p.Key]; dup {
			return fail(CodeInvalidPayload, fmt.Sprintf("duplicate field %q", p.Key))
		}
		fields[p.Key] = p.Value
	}

	supplied := fields[fieldHash]
	if supplied == "" {
		return fail(CodeMissingHash, "hash field is missing")
	}

	checkString := CheckString(pairs)
	expected, err := signature(checkString, botToken, o.newHash)
	if err != nil {
		return fail(CodeCryptoUnavailable, "HMAC-SHA256 is not available")
	}
	if !equalHex(expected, supplied) {
		return fail(CodeHashMismatch, "hash does not match payload")
	}

	authDate, res, ok := checkAuthDate(fields, o)
	if !ok {
		return res
	}

	data := &Data{
		QueryID:      fields[fieldQueryID],
		ChatType:     fields[fieldChatType],
		ChatInstance: fields[fieldChatInstance],
		StartParam:   fields[fieldStartParam],
		AuthDate:     authDate,
		Hash:         supplied,
		Fields:       fields,
		CheckString:  checkString,
		Raw:          raw,
	}

	if res, ok := decodeJSON(fields, fieldUser, &data.User); !ok {
		return res
	}
	if res, ok := decodeJSON(fields, fieldReceiver, &data.Receiver); !ok {
		return res
	}
	if res, ok := decodeJSON(fields, fieldChat, &data.Chat); !ok {
		return res
	}

	if v, present := fields[fieldCanSendAfter]; present {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fail(CodeInvalidPayload, "can_send_after is not a number")
		}
		data.CanSendAfter = n
	}

	if o.requireUser && data.User == nil {
		return fail(CodeInvalidPayload, "user field is required")
	}

	return Result{OK: true, Data: data}
}

func checkAuthDate(fields map[string]string, o *options) (int64, Result, bool) {
	v, present := fields[fieldAuthDate]
	if !present {
		return 0, fail(CodeInvalidAuthDate, "auth_date is missing"), false
	}
	authDate, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fail(CodeInvalidAuthDate, "auth_date is not a unix timestamp"), false
	}

	now := o.now().Unix()
	if o.maxAge > 0 && now-authDate > int64(o.maxAge/time.Second) {
		return 0, fail(CodeExpired, fmt.Sprintf("init data is older than %s", o.maxAge)), false
	}
	if authDate-now > int64(maxFutureSkew/time.Second) {
		return 0, fail(CodeInvalidAuthDate, "auth_date is in the future"), false
	}
	return authDate, Result{}, true
}

func decodeJSON[T any](fields map[string]string, key string, dst **T) (Result, bool) {
	v, present := fields[key]
	if !present || v == "" || strings.TrimSpace(v) == "null" {
		return Result{}, true
	}
	var out T
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return fail(CodeInvalidJSON, fmt.Sprintf("field %q is not valid JSON", key)), false
	}
	*dst = &out
	return Result{}, true
}

// CheckString builds the canonical string the signature covers: every field
// except hash as key=value, sorted by key, joined with "\n".
func CheckString(pairs []Pair) string {
	lines := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if p.Key != fieldHash {
			lines = append(lines, p)
		}
	}
	slices.SortFunc(lines, func(a, b Pair) int {
		if c := strings.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		return strings.Compare(a.Value, b.Value)
	})

	var sb strings.Builder
	for i, p := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// signature derives the signing key from the bot token and returns the
// hex-encoded HMAC of checkString. A missing or panicking primitive is
// reported as an error without any intermediate state.
func signature(checkString, botToken string, newHash func() hash.Hash) (sig string, err error) {
	if newHash == nil {
		return "", ErrCryptoUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			sig, err = "", ErrCryptoUnavailable
		}
	}()

	secret := hmac.New(newHash, []byte(secretKeyLabel))
	secret.Write([]byte(botToken))

	mac := hmac.New(newHash, secret.Sum(nil))
	mac.Write([]byte(checkString))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// equalHex compares hex digests in constant time. The supplied digest is
// lower-cased first so clients may send either case.
func equalHex(expected, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(supplied))) == 1
}

// ParsePairs splits a query string into ordered, unescaped pairs.
// A leading "?" is ignored; empty segments are skipped.
func ParsePairs(raw string) ([]Pair, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")
	var pairs []Pair
	for segment := range strings.SplitSeq(raw, "&") {
		if segment == "" {
			continue
		}
		k, v, _ := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("malformed key %q", k)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("malformed value for %q", key)
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no fields in init data")
	}
	return pairs, nil
}

// EncodePairs renders pairs as a query string, keeping their order.
func EncodePairs(pairs []Pair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

func fail(code Code, msg string) Result {
	return Result{OK: false, Error: code, Message: msg}
}
