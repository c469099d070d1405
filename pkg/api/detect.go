package api

import (
	"net/http"

	"github.com/dmitrymomot/platformkit/pkg/detector"
	"github.com/dmitrymomot/platformkit/pkg/evidence"
)

type detectResponse struct {
	Result       *detector.Result       `json:"result"`
	Availability *detector.Availability `json:"availability,omitempty"`
}

func (s *server) detectFromHeaders(r *http.Request, _ struct{}) Response {
	res, ok := detector.FromContext(r.Context())
	if !ok {
		return JSONError(ErrInternal)
	}
	return JSON(s.detectResponse(r, res))
}

// detectFromSnapshot enriches with client hints when the snapshot carries
// them. The primary type is never changed by hints.
func (s *server) detectFromSnapshot(r *http.Request, snap evidence.Snapshot) Response {
	opts := append(s.detectorOptions(),
		detector.WithFeatureDetection(true),
		detector.WithClientHints(snap.HintsSupported()),
	)
	det := detector.New(snap, opts...)

	var res *detector.Result
	if snap.HintsSupported() {
		res = det.DetectWithHints(r.Context())
	} else {
		res = det.Detect()
	}
	return JSON(s.detectResponse(r, res))
}

// detectResponse adds availability when a bot is configured. The deep link
// targets the "url" query parameter, or the Referer when absent.
func (s *server) detectResponse(r *http.Request, res *detector.Result) detectResponse {
	out := detectResponse{Result: res}
	if s.cfg.BotUsername != "" {
		current := r.URL.Query().Get("url")
		if current == "" {
			current = r.Referer()
		}
		a := detector.CheckAvailability(res, s.cfg.BotUsername, current)
		out.Availability = &a
	}
	return out
}
