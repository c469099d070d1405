package detector

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dmitrymomot/platformkit/pkg/cache"
	"github.com/dmitrymomot/platformkit/pkg/environment"
	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/logger"
	"github.com/dmitrymomot/platformkit/pkg/platform"
	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

// Detector classifies the runtime context of one client. It owns a result
// cache; use ClearCache to invalidate it explicitly.
type Detector struct {
	collector evidence.Collector
	opts      *options
	cache     *cache.Value[*Result]
}

// New creates a detector reading from c. A nil collector behaves like an
// empty snapshot.
func New(c evidence.Collector, opts ...Option) *Detector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if c == nil {
		c = evidence.Snapshot{}
	}
	return &Detector{
		collector: c,
		opts:      o,
		cache:     cache.NewValue[*Result](o.cacheTTL, o.now),
	}
}

// Detect returns the current verdict. Within the cache window it returns
// the same *Result. It never panics.
func (d *Detector) Detect() *Result {
	return d.cache.GetOrCompute(d.compute)
}

// ClearCache drops the cached verdict so the next Detect recomputes.
func (d *Detector) ClearCache() {
	d.cache.Clear()
}

func (d *Detector) compute() (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			d.opts.logger.Error("runtime detection failed",
				logger.Component("detector"),
				logger.Error(fmt.Errorf("panic: %v", r)),
			)
			res = d.fallback()
		}
	}()

	c := d.collector
	ua := d.userAgent()
	host := d.hostname()
	viewport := c.Viewport()
	parsed := d.parse(ua, c.MaxTouchPoints(), c.NavigatorPlatform(), viewport.Width)

	env := d.opts.environment
	if env == "" {
		env = environment.Classify(host)
	}
	domain := environment.DomainModeOf(host)

	isNative, nativeInfo := platform.DetectNative(c)
	isMiniApp, miniAppInfo := platform.DetectMiniApp(c)
	isPWA := platform.DetectPWA(c)
	primary := resolve(isNative, isMiniApp, isPWA)

	os, device := parsed.OS(), parsed.DeviceType()
	if primary == TypeMiniApp {
		os, device = applyPlatform(os, device, miniAppInfo.Platform)
	}

	res = &Result{
		primaryType:       primary,
		os:                os,
		device:            device,
		browser:           parsed.Browser(),
		environment:       env,
		domainMode:        domain,
		shouldShowWarning: domain == environment.DomainMiniApp && !isMiniApp,
		userAgent:         ua,
		hostname:          host,
		viewport:          viewport,
		bot:               parsed.IsBot(),
		frozen:            parsed.IsFrozen(),
		detectedAt:        d.opts.now(),
	}
	if isNative {
		res.native = nativeInfo
	}
	if isMiniApp {
		res.miniApp = miniAppInfo
	}
	if d.opts.featureDetection {
		f := c.Features()
		res.features = &f
	}
	res.confidence = score(d.signals(res))

	d.observe(res)
	return res
}

// fallback is the verdict used when evidence could not be read at all.
func (d *Detector) fallback() *Result {
	return &Result{
		primaryType: TypeWeb,
		os:          useragent.OSUnknown,
		device:      useragent.DeviceDesktop,
		browser:     useragent.Browser{Name: useragent.BrowserUnknown},
		environment: environment.Unknown,
		domainMode:  environment.DomainUnknown,
		detectedAt:  d.opts.now(),
	}
}

func (d *Detector) signals(r *Result) signals {
	s := signals{
		frozen:           r.frozen,
		hintsAvailable:   d.hintsAvailable(),
		hintsUsed:        r.hintsUsed,
		hintsExpected:    d.opts.clientHints,
		osUnknown:        r.os == useragent.OSUnknown,
		browserUnknown:   r.browser.Name == useragent.BrowserUnknown,
		featureDetection: r.features != nil,
		device:           r.device,
	}
	if r.features != nil {
		s.features = *r.features
	}
	return s
}

func (d *Detector) observe(r *Result) {
	if d.opts.metrics != nil {
		d.opts.metrics.ObserveDetection(string(r.primaryType), r.os, r.device)
	}
	d.logResult(r)
}

func (d *Detector) logResult(r *Result) {
	if d.opts.debug {
		d.opts.logger.Debug("runtime detected",
			logger.Component("detector"),
			logger.Detection(string(r.primaryType), r.os, r.device, r.confidence.Overall),
			logger.Host(r.hostname),
			slog.String("environment", string(r.environment)),
			slog.String("domain_mode", string(r.domainMode)),
			slog.String("browser", r.browser.Name),
			slog.Bool("frozen_user_agent", r.frozen),
			slog.Bool("hints_used", r.hintsUsed),
		)
	}
}

func (d *Detector) userAgent() string {
	if d.opts.userAgent != "" {
		return d.opts.userAgent
	}
	return d.collector.UserAgent()
}

func (d *Detector) hostname() string {
	if d.opts.hostname != "" {
		return d.opts.hostname
	}
	return d.collector.Hostname()
}

func (d *Detector) hintsAvailable() bool {
	hp, ok := d.collector.(evidence.HintsProvider)
	return ok && hp.HintsSupported()
}

// parse runs the user agent parser, through the shared cache when one is
// configured. Parse errors only mean the UA was empty or unrecognizable; the
// returned value is usable either way.
func (d *Detector) parse(ua string, touchPoints int, navPlatform string, width int) useragent.UserAgent {
	if d.opts.parseCache == nil {
		parsed, _ := useragent.ParseWith(ua, touchPoints, navPlatform, width)
		return parsed
	}

	key := parseKey(ua, touchPoints, navPlatform, width)
	if parsed, ok := d.opts.parseCache.Get(key); ok {
		return parsed
	}
	parsed, _ := useragent.ParseWith(ua, touchPoints, navPlatform, width)
	d.opts.parseCache.Put(key, parsed)
	return parsed
}

func parseKey(ua string, touchPoints int, navPlatform string, width int) string {
	var sb strings.Builder
	sb.Grow(len(ua) + len(navPlatform) + 16)
	sb.WriteString(strconv.Itoa(touchPoints))
	sb.WriteByte('|')
	sb.WriteString(navPlatform)
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(width))
	sb.WriteByte('|')
	sb.WriteString(ua)
	return sb.String()
}
