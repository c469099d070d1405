package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrymomot/platformkit/pkg/evidence"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 64 << 10

// bindJSON decodes a strict JSON body into v. Unknown fields and trailing
// data are rejected.
func bindJSON[R any](w http.ResponseWriter, r *http.Request, v *R) error {
	if err := requireJSON(r); err != nil {
		return err
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.Join(ErrInvalidBody, errors.New("unexpected data after JSON object"))
	}
	return nil
}

// requireJSON accepts an absent Content-Type only for empty bodies.
func requireJSON(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		if r.ContentLength == 0 {
			return nil
		}
		return ErrUnsupportedMediaType
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil || mediaType != "application/json" {
		return ErrUnsupportedMediaType
	}
	return nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errors.Join(ErrBodyTooLarge, err)
	}
	return errors.Join(ErrInvalidBody, err)
}

// bindSnapshot decodes a probe snapshot and fills what it omits from the
// request headers. An empty body yields a headers-only snapshot.
func bindSnapshot(_ http.ResponseWriter, r *http.Request, s *evidence.Snapshot) error {
	if err := requireJSON(r); err != nil {
		return err
	}
	snap, err := evidence.DecodeSnapshot(r.Body)
	if err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	*s = snap.WithRequest(r)
	return nil
}
