package initdata

import "crypto/sha256"

// Sign appends a hash field to pairs, signed with botToken the way the
// messaging platform does, and returns the encoded query string. Existing
// hash fields are dropped. Useful for clients of test environments and for
// tests.
func Sign(pairs []Pair, botToken string) (string, error) {
	if botToken == "" {
		return "", ErrMissingBotToken
	}
	unsigned := make([]Pair, 0, len(pairs)+1)
	for _, p := range pairs {
		if p.Key != fieldHash {
			unsigned = append(unsigned, p)
		}
	}

	sig, err := signature(CheckString(unsigned), botToken, sha256.New)
	if err != nil {
		return "", err
	}
	return EncodePairs(append(unsigned, Pair{Key: fieldHash, Value: sig})), nil
}
