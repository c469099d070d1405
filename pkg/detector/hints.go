package detector

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/logger"
	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

// DetectWithHints returns Detect's verdict enriched with high-entropy client
// hints. The hints call is bounded by the hints timeout and ctx. When hints
// are unsupported, slow, failing or panicking, the synchronous verdict is
// returned unchanged, as it is for detectors built without WithClientHints.
// Enrichment may refine OS, device and browser version but never the
// primary type.
func (d *Detector) DetectWithHints(ctx context.Context) *Result {
	base := d.Detect()
	if !d.opts.clientHints {
		return base
	}

	hp, ok := d.collector.(evidence.HintsProvider)
	if !ok || !hp.HintsSupported() {
		return base
	}

	ctx, cancel := context.WithTimeout(ctx, d.opts.hintsTimeout)
	defer cancel()

	hints, err := fetchHints(ctx, hp)
	if err != nil {
		d.opts.logger.DebugContext(ctx, "client hints unavailable",
			logger.Component("detector"),
			logger.Error(err),
		)
		return base
	}
	return d.enrich(base, hints)
}

type hintsResult struct {
	hints evidence.ClientHints
	err   error
}

func fetchHints(ctx context.Context, hp evidence.HintsProvider) (evidence.ClientHints, error) {
	ch := make(chan hintsResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- hintsResult{err: fmt.Errorf("%w: %v", ErrHintsPanic, r)}
			}
		}()
		h, err := hp.HighEntropyValues(ctx)
		ch <- hintsResult{hints: h, err: err}
	}()

	select {
	case r := <-ch:
		return r.hints, r.err
	case <-ctx.Done():
		return evidence.ClientHints{}, ctx.Err()
	}
}

// enrich returns a copy of base refined by hints.
func (d *Detector) enrich(base *Result, hints evidence.ClientHints) *Result {
	res := *base
	res.hintsUsed = true

	if os := useragent.NormalizeOS(hints.Platform); os != useragent.OSUnknown {
		res.os = os
	}
	if hints.Mobile && res.device == useragent.DeviceDesktop {
		res.device = useragent.DeviceMobile
	}
	if v := brandVersion(hints.FullVersionList, res.browser.Name); v != "" {
		res.browser.Version = v
	}
	if res.primaryType == TypeMiniApp && res.miniApp != nil {
		res.os, res.device = applyPlatform(res.os, res.device, res.miniApp.Platform)
	}
	res.confidence = score(d.signals(&res))
	d.logResult(&res)
	return &res
}

// brandNames maps browser identifiers to the brand names used in hints.
var brandNames = map[string]string{
	useragent.BrowserChrome:  "google chrome",
	useragent.BrowserEdge:    "microsoft edge",
	useragent.BrowserOpera:   "opera",
	useragent.BrowserBrave:   "brave",
	useragent.BrowserYandex:  "yandex",
	useragent.BrowserSamsung: "samsung internet",
	useragent.BrowserVivaldi: "vivaldi",
}

func brandVersion(brands []evidence.Brand, browser string) string {
	want, ok := brandNames[browser]
	if !ok {
		return ""
	}
	for _, b := range brands {
		if strings.Contains(strings.ToLower(b.Brand), want) {
			return b.Version
		}
	}
	return ""
}
