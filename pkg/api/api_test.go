package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/platformkit/pkg/api"
	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/initdata"
	"github.com/dmitrymomot/platformkit/pkg/metrics"
	"github.com/dmitrymomot/platformkit/pkg/requestid"
)

const (
	botToken  = "12345:test-token"
	iPhoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	windowsUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.109 Safari/537.36"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func newRouter(t *testing.T, cfg api.Config) (http.Handler, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(nil)
	return api.NewRouter(cfg, api.WithMetrics(m), api.WithClock(func() time.Time { return fixedNow })), m
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func signedInitData(t *testing.T, authDate time.Time) string {
	t.Helper()
	raw, err := initdata.Sign([]initdata.Pair{
		{Key: "auth_date", Value: strconv.FormatInt(authDate.Unix(), 10)},
		{Key: "query_id", Value: "AAH"},
		{Key: "user", Value: `{"id":42,"first_name":"Ann","username":"ann"}`},
	}, botToken)
	require.NoError(t, err)
	return raw
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		token  string
		path   string
		status int
		body   string
	}{
		{"live without token", "", "/health/live", http.StatusOK, "ALIVE"},
		{"ready without token", "", "/health/ready", http.StatusServiceUnavailable, "NOT_READY"},
		{"ready with token", botToken, "/health/ready", http.StatusOK, "READY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := newRouter(t, api.Config{BotToken: tt.token})
			rec, _ := do(t, h, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestCommonHeaders(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, api.Config{})
	rec, _ := do(t, h, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	assert.Equal(t, evidence.AcceptCHValue, rec.Header().Get("Accept-CH"))
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, api.Config{})
	rec, body := do(t, h, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	rec, body = do(t, h, httptest.NewRequest(http.MethodDelete, "/v1/detect", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", errorCode(body))
}

func TestDetectSnapshot(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, api.Config{})
	snap := `{"user_agent":"` + iPhoneUA + `","hostname":"tg.example.com","messaging_sdk":{"platform":"ios","version":"7.0"}}`
	rec, body := do(t, h, jsonRequest(http.MethodPost, "/v1/detect", snap))
	require.Equal(t, http.StatusOK, rec.Code)

	result := body["data"].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, "mini-app", result["type"])
	assert.Equal(t, "ios", result["os"])
	assert.Equal(t, "mobile", result["device"])
	assert.Equal(t, false, result["should_show_warning"])
	assert.NotContains(t, body["data"], "availability")
}

func TestDetectSnapshotWithHints(t *testing.T) {
	t.Parallel()

	h, m := newRouter(t, api.Config{})
	snap := `{"user_agent":"` + windowsUA + `","hints":{"platform":"Windows","platform_version":"15.0.0"}}`
	rec, body := do(t, h, jsonRequest(http.MethodPost, "/v1/detect", snap))
	require.Equal(t, http.StatusOK, rec.Code)

	result := body["data"].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, true, result["hints_used"])
	assert.Equal(t, "windows", result["os"])
	assert.InDelta(t, 1, testutil.ToFloat64(m.Detections), 0)
}

func TestDetectAvailability(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, api.Config{BotUsername: "@shop_bot"})
	snap := `{"user_agent":"` + windowsUA + `","hostname":"tg.example.com"}`
	rec, body := do(t, h, jsonRequest(http.MethodPost, "/v1/detect?url=https://tg.example.com/cart", snap))
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, "web", data["result"].(map[string]any)["type"])
	avail := data["availability"].(map[string]any)
	assert.Equal(t, true, avail["required"])
	assert.Equal(t, false, avail["available"])
	assert.Equal(t, "https://t.me/shop_bot?start=https%3A%2F%2Ftg.example.com%2Fcart", avail["deep_link"])
}

func TestDetectHeadersOnly(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, api.Config{})

	get := httptest.NewRequest(http.MethodGet, "http://app.example.com/v1/detect", nil)
	get.Header.Set("User-Agent", iPhoneUA)
	rec, body := do(t, h, get)
	require.Equal(t, http.StatusOK, rec.Code)
	result := body["data"].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, "web", result["type"])
	assert.Equal(t, "ios", result["os"])
	assert.Equal(t, "app.example.com", result["hostname"])

	post := httptest.NewRequest(http.MethodPost, "http://app.example.com/v1/detect", nil)
	post.Header.Set("User-Agent", windowsUA)
	rec, body = do(t, h, post)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "windows", body["data"].(map[string]any)["result"].(map[string]any)["os"])
}

func TestDetectBadRequests(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, api.Config{})

	rec, body := do(t, h, jsonRequest(http.MethodPost, "/v1/detect", `{"user_agent":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_BODY", errorCode(body))

	req := httptest.NewRequest(http.MethodPost, "/v1/detect", strings.NewReader("ua=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, body = do(t, h, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", errorCode(body))
}

func TestVerify(t *testing.T) {
	t.Parallel()

	valid := signedInitData(t, fixedNow.Add(-time.Minute))

	tests := []struct {
		name   string
		token  string
		body   string
		status int
		code   string
	}{
		{"valid", botToken, `{"init_data":"` + valid + `"}`, http.StatusOK, ""},
		{"tampered", botToken, `{"init_data":"` + strings.Replace(valid, "query_id=AAH", "query_id=AAX", 1) + `"}`, http.StatusUnauthorized, "HASH_MISMATCH"},
		{"expired", botToken, `{"init_data":"` + signedInitData(t, fixedNow.Add(-time.Hour)) + `"}`, http.StatusUnauthorized, "EXPIRED"},
		{"empty", botToken, `{"init_data":""}`, http.StatusBadRequest, "MISSING_INIT_DATA"},
		{"no token", "", `{"init_data":"` + valid + `"}`, http.StatusInternalServerError, "MISSING_BOT_TOKEN"},
		{"unknown field", botToken, `{"init_data":"x","extra":1}`, http.StatusBadRequest, "INVALID_BODY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := newRouter(t, api.Config{BotToken: tt.token})
			rec, body := do(t, h, jsonRequest(http.MethodPost, "/v1/init-data/verify", tt.body))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(body))
			if tt.code == "" {
				data := body["data"].(map[string]any)
				assert.Equal(t, "AAH", data["query_id"])
				assert.EqualValues(t, 42, data["user"].(map[string]any)["id"])
			}
		})
	}
}

func TestVerifyMaxAge(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, api.Config{BotToken: botToken, InitDataMaxAge: 2 * time.Hour})
	body := `{"init_data":"` + signedInitData(t, fixedNow.Add(-time.Hour)) + `"}`
	rec, _ := do(t, h, jsonRequest(http.MethodPost, "/v1/init-data/verify", body))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMe(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, api.Config{BotToken: botToken})

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "tma "+signedInitData(t, fixedNow))
	rec, body := do(t, h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann", body["data"].(map[string]any)["username"])

	rec, body = do(t, h, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_INIT_DATA", errorCode(body))
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	h, _ := newRouter(t, api.Config{BotToken: botToken})
	body := `{"init_data":"` + signedInitData(t, fixedNow) + `"}`
	rec, _ := do(t, h, jsonRequest(http.MethodPost, "/v1/init-data/verify", body))
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, jsonRequest(http.MethodPost, "/v1/detect", `{"user_agent":"`+windowsUA+`"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `platformkit_initdata_verifications_total{result="ok"} 1`)
	assert.Contains(t, out, `platformkit_detections_total{device="desktop",os="windows",primary_type="web"} 1`)
	assert.Contains(t, out, `route="/v1/init-data/verify"`)
}
