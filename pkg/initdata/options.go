package initdata

import (
	"crypto/sha256"
	"hash"
	"time"
)

// DefaultMaxAge is how old auth_date may be before init data expires.
const DefaultMaxAge = 600 * time.Second

// maxFutureSkew is how far auth_date may lie ahead of the local clock.
const maxFutureSkew = 60 * time.Second

// Option configures a single verification.
type Option func(*options)

type options struct {
	maxAge      time.Duration
	requireUser bool
	now         func() time.Time
	newHash     func() hash.Hash
}

func defaultOptions() *options {
	return &options{
		maxAge:  DefaultMaxAge,
		now:     time.Now,
		newHash: sha256.New,
	}
}

// WithMaxAge sets the freshness window. Zero disables the expiry check.
// Negative values are ignored.
func WithMaxAge(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.maxAge = d
		}
	}
}

// WithRequireUser rejects payloads that carry no user field.
func WithRequireUser() Option {
	return func(o *options) { o.requireUser = true }
}

// WithNow overrides the clock used for freshness checks.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithHash overrides the hash constructor used for HMAC. A nil constructor
// makes every verification fail with CRYPTO_UNAVAILABLE.
func WithHash(newHash func() hash.Hash) Option {
	return func(o *options) { o.newHash = newHash }
}
