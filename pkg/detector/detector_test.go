package detector_test

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/platformkit/pkg/detector"
	"github.com/dmitrymomot/platformkit/pkg/environment"
	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/platform"
	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

const (
	iPhoneUA        = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	iPadUA          = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	androidUA       = "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.144 Mobile Safari/537.36"
	windowsUA       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.109 Safari/537.36"
	windowsFrozenUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(1_700_000_000, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type countingRecorder struct {
	calls atomic.Int32
	last  atomic.Value
}

func (r *countingRecorder) ObserveDetection(primaryType, os, device string) {
	r.calls.Add(1)
	r.last.Store(primaryType + "/" + os + "/" + device)
}

type panickingCollector struct {
	evidence.Snapshot
}

func (panickingCollector) UserAgent() string { panic("navigator is gone") }

func miniAppSDK(p string) *evidence.MessagingSDK {
	return &evidence.MessagingSDK{Platform: p, ColorScheme: "dark", InitDataRaw: "auth_date=1&hash=x"}
}

func TestDetect_Precedence(t *testing.T) {
	t.Parallel()

	native := evidence.NativeBridge{Present: true, IsNativePlatform: true, Platform: "android"}
	standalone := []string{evidence.DisplayStandalone}

	tests := []struct {
		name        string
		snap        evidence.Snapshot
		want        detector.Type
		wantNative  bool
		wantMiniApp bool
	}{
		{name: "nothing", snap: evidence.Snapshot{UA: windowsUA}, want: detector.TypeWeb},
		{name: "pwa", snap: evidence.Snapshot{UA: windowsUA, MatchedDisplayModes: standalone}, want: detector.TypePWA},
		{name: "ios home screen", snap: evidence.Snapshot{UA: iPhoneUA, Standalone: true}, want: detector.TypePWA},
		{
			name:        "mini-app beats pwa",
			snap:        evidence.Snapshot{UA: androidUA, MatchedDisplayModes: standalone, SDK: miniAppSDK("android")},
			want:        detector.TypeMiniApp,
			wantMiniApp: true,
		},
		{
			name:        "native beats everything",
			snap:        evidence.Snapshot{UA: androidUA, Native: native, MatchedDisplayModes: standalone, SDK: miniAppSDK("android")},
			want:        detector.TypeNative,
			wantNative:  true,
			wantMiniApp: true,
		},
		{
			name: "bundled bridge is not native",
			snap: evidence.Snapshot{UA: windowsUA, Native: evidence.NativeBridge{Present: true}, MatchedDisplayModes: standalone},
			want: detector.TypePWA,
		},
		{name: "marker alone is web", snap: evidence.Snapshot{UA: windowsUA, Marker: true}, want: detector.TypeWeb},
		{name: "legacy runtime", snap: evidence.Snapshot{UA: androidUA, LegacyRuntime: true}, want: detector.TypeNative, wantNative: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := detector.New(tt.snap).Detect()

			assert.Equal(t, tt.want, res.PrimaryType())
			flags := []bool{res.IsWeb(), res.IsPWA(), res.IsMiniApp(), res.IsNative()}
			trues := 0
			for _, f := range flags {
				if f {
					trues++
				}
			}
			assert.Equal(t, 1, trues, "exactly one primary type")
			assert.Equal(t, tt.wantNative, res.NativeInfo() != nil)
			assert.Equal(t, tt.wantMiniApp, res.MiniAppInfo() != nil)
		})
	}
}

func TestDetect_MiniAppPlatformOverride(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		ua         string
		platform   string
		wantOS     string
		wantDevice string
	}{
		{name: "android host on desktop ua", ua: windowsUA, platform: "android", wantOS: useragent.OSAndroid, wantDevice: useragent.DeviceMobile},
		{name: "android_x host", ua: windowsUA, platform: "android_x", wantOS: useragent.OSAndroid, wantDevice: useragent.DeviceMobile},
		{name: "ios host keeps tablet", ua: iPadUA, platform: "ios", wantOS: useragent.OSiOS, wantDevice: useragent.DeviceTablet},
		{name: "ios host corrects os", ua: androidUA, platform: "ios", wantOS: useragent.OSiOS, wantDevice: useragent.DeviceMobile},
		{name: "macos host", ua: windowsUA, platform: "macos", wantOS: useragent.OSMacOS, wantDevice: useragent.DeviceDesktop},
		{name: "tdesktop host", ua: androidUA, platform: "tdesktop", wantOS: useragent.OSAndroid, wantDevice: useragent.DeviceDesktop},
		{name: "unigram host", ua: windowsUA, platform: "unigram", wantOS: useragent.OSWindows, wantDevice: useragent.DeviceDesktop},
		{name: "web client leaves ua verdict", ua: iPhoneUA, platform: "weba", wantOS: useragent.OSiOS, wantDevice: useragent.DeviceMobile},
		{name: "webk on desktop", ua: windowsUA, platform: "webk", wantOS: useragent.OSWindows, wantDevice: useragent.DeviceDesktop},
		{name: "unknown platform", ua: windowsUA, platform: "", wantOS: useragent.OSWindows, wantDevice: useragent.DeviceDesktop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := detector.New(evidence.Snapshot{UA: tt.ua, SDK: miniAppSDK(tt.platform)}).Detect()

			require.True(t, res.IsMiniApp())
			assert.Equal(t, tt.wantOS, res.OS())
			assert.Equal(t, tt.wantDevice, res.Device())
		})
	}
}

func TestDetect_OverrideOnlyForMiniApp(t *testing.T) {
	t.Parallel()

	res := detector.New(evidence.Snapshot{
		UA:     windowsUA,
		Native: evidence.NativeBridge{Present: true, IsNativePlatform: true},
		SDK:    miniAppSDK("ios"),
	}).Detect()

	require.True(t, res.IsNative())
	assert.Equal(t, useragent.OSWindows, res.OS())
	assert.Equal(t, useragent.DeviceDesktop, res.Device())
}

func TestDetect_EnvironmentAndWarning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		snap        evidence.Snapshot
		opts        []detector.Option
		wantEnv     environment.Environment
		wantMode    environment.DomainMode
		wantWarning bool
	}{
		{
			name:     "local dev",
			snap:     evidence.Snapshot{UA: windowsUA, Host: "localhost:3000"},
			wantEnv:  environment.Development,
			wantMode: environment.DomainUnknown,
		},
		{
			name:        "mini-app domain in a browser",
			snap:        evidence.Snapshot{UA: windowsUA, Host: "tg.example.com"},
			wantEnv:     environment.Production,
			wantMode:    environment.DomainMiniApp,
			wantWarning: true,
		},
		{
			name:     "mini-app domain inside the client",
			snap:     evidence.Snapshot{UA: iPhoneUA, Host: "tg.example.com", SDK: miniAppSDK("ios")},
			wantEnv:  environment.Production,
			wantMode: environment.DomainMiniApp,
		},
		{
			name:     "app domain",
			snap:     evidence.Snapshot{UA: windowsUA, Host: "app.example.com"},
			wantEnv:  environment.Production,
			wantMode: environment.DomainApp,
		},
		{
			name:     "overrides",
			snap:     evidence.Snapshot{UA: "ignored", Host: "ignored"},
			opts:     []detector.Option{detector.WithHostname("tg.example.io"), detector.WithEnvironment(environment.Staging), detector.WithUserAgent(iPhoneUA)},
			wantEnv:  environment.Staging,
			wantMode: environment.DomainMiniApp,

			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := detector.New(tt.snap, tt.opts...).Detect()
			assert.Equal(t, tt.wantEnv, res.Environment())
			assert.Equal(t, tt.wantMode, res.DomainMode())
			assert.Equal(t, tt.wantWarning, res.ShouldShowWarning())
		})
	}
}

func TestDetect_Confidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		snap evidence.Snapshot
		opts []detector.Option
		want detector.Confidence
	}{
		{
			name: "clean desktop",
			snap: evidence.Snapshot{UA: windowsUA},
			want: detector.Confidence{Overall: 100, OS: 100, Device: 100, Browser: 100},
		},
		{
			name: "frozen ua",
			snap: evidence.Snapshot{UA: windowsFrozenUA},
			want: detector.Confidence{Overall: 80, OS: 75, Device: 90, Browser: 100},
		},
		{
			name: "frozen ua with unused hints",
			snap: evidence.Snapshot{UA: windowsFrozenUA, Hints: &evidence.ClientHints{Platform: "Windows"}},
			want: detector.Confidence{Overall: 70, OS: 60, Device: 90, Browser: 100},
		},
		{
			name: "hints expected by caller",
			snap: evidence.Snapshot{UA: windowsFrozenUA, Hints: &evidence.ClientHints{Platform: "Windows"}},
			opts: []detector.Option{detector.WithClientHints(true)},
			want: detector.Confidence{Overall: 80, OS: 75, Device: 90, Browser: 100},
		},
		{
			name: "empty evidence",
			snap: evidence.Snapshot{},
			want: detector.Confidence{Overall: 60, OS: 20, Device: 100, Browser: 60},
		},
		{
			name: "feature detection agrees",
			snap: evidence.Snapshot{UA: windowsFrozenUA},
			opts: []detector.Option{detector.WithFeatureDetection(true)},
			want: detector.Confidence{Overall: 85, OS: 75, Device: 95, Browser: 100},
		},
		{
			name: "feature detection contradicts",
			snap: evidence.Snapshot{UA: windowsFrozenUA, Capabilities: evidence.Features{PointerCoarse: true}},
			opts: []detector.Option{detector.WithFeatureDetection(true)},
			want: detector.Confidence{Overall: 80, OS: 75, Device: 90, Browser: 100},
		},
		{
			name: "bonus is clamped",
			snap: evidence.Snapshot{UA: iPhoneUA, Capabilities: evidence.Features{PointerCoarse: true, TouchEvents: true}},
			opts: []detector.Option{detector.WithFeatureDetection(true)},
			want: detector.Confidence{Overall: 100, OS: 100, Device: 100, Browser: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := detector.New(tt.snap, tt.opts...).Detect()
			assert.Equal(t, tt.want, res.Confidence())
		})
	}
}

func TestDetect_Cache(t *testing.T) {
	t.Parallel()

	t.Run("same pointer within window", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		rec := &countingRecorder{}
		det := detector.New(evidence.Snapshot{UA: windowsUA}, detector.WithClock(clock.Now), detector.WithMetrics(rec))

		first := det.Detect()
		clock.Advance(4 * time.Second)
		assert.Same(t, first, det.Detect())
		assert.Equal(t, int32(1), rec.calls.Load())

		clock.Advance(time.Second)
		second := det.Detect()
		assert.NotSame(t, first, second)
		assert.Equal(t, int32(2), rec.calls.Load())
		assert.Equal(t, "web/windows/desktop", rec.last.Load())
	})

	t.Run("clear cache", func(t *testing.T) {
		t.Parallel()
		det := detector.New(evidence.Snapshot{UA: windowsUA})
		first := det.Detect()
		det.ClearCache()
		assert.NotSame(t, first, det.Detect())
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		det := detector.New(evidence.Snapshot{UA: windowsUA}, detector.WithCacheTTL(0))
		assert.NotSame(t, det.Detect(), det.Detect())
	})

	t.Run("concurrent readers", func(t *testing.T) {
		t.Parallel()
		det := detector.New(evidence.Snapshot{UA: windowsUA}, detector.WithCacheTTL(time.Hour))
		first := det.Detect()

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Same(t, first, det.Detect())
			}()
		}
		wg.Wait()
	})
}

func TestDetect_NeverPanics(t *testing.T) {
	t.Parallel()

	res := detector.New(panickingCollector{}).Detect()
	require.NotNil(t, res)
	assert.True(t, res.IsWeb())
	assert.Equal(t, useragent.OSUnknown, res.OS())

	res = detector.New(nil).Detect()
	require.NotNil(t, res)
	assert.True(t, res.IsWeb())
}

func TestDetect_ConfidenceAlwaysInRange(t *testing.T) {
	t.Parallel()

	uas := []string{"", "garbage", iPhoneUA, iPadUA, androidUA, windowsUA, windowsFrozenUA}
	for _, ua := range uas {
		for _, coarse := range []bool{false, true} {
			for _, hints := range []*evidence.ClientHints{nil, {}} {
				snap := evidence.Snapshot{UA: ua, Hints: hints, Capabilities: evidence.Features{PointerCoarse: coarse}}
				c := detector.New(snap, detector.WithFeatureDetection(coarse)).Detect().Confidence()
				for _, v := range []int{c.Overall, c.OS, c.Device, c.Browser} {
					assert.GreaterOrEqual(t, v, 0)
					assert.LessOrEqual(t, v, 100)
				}
			}
		}
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	t.Parallel()

	res := detector.New(evidence.Snapshot{
		UA:   iPhoneUA,
		Host: "tg.example.com",
		SDK:  miniAppSDK("ios"),
	}, detector.WithFeatureDetection(true)).Detect()

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "mini-app", got["type"])
	assert.Equal(t, "ios", got["os"])
	assert.Equal(t, "mobile", got["device"])
	assert.Equal(t, true, got["is_mini_app"])
	assert.Equal(t, true, got["is_mobile"])
	assert.Equal(t, "tma", got["domain_mode"])
	assert.Equal(t, false, got["should_show_warning"])
	assert.Contains(t, got, "confidence")
	assert.Contains(t, got, "features")

	miniApp, ok := got["mini_app"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(platform.IOS), miniApp["platform"])
	assert.Equal(t, "third_party", miniApp["source"])
}

func TestResult_DerivedFlags(t *testing.T) {
	t.Parallel()

	res := detector.New(evidence.Snapshot{UA: androidUA}).Detect()
	assert.True(t, res.IsAndroid())
	assert.True(t, res.IsMobile())
	assert.False(t, res.IsIOS())
	assert.False(t, res.IsDesktop())
	assert.False(t, res.IsTablet())
	assert.Equal(t, useragent.BrowserChrome, res.Browser().Name)
	assert.Equal(t, androidUA, res.UserAgent())
}
