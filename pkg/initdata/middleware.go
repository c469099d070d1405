package initdata

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// AuthScheme is the Authorization scheme carrying raw init data.
const AuthScheme = "tma"

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	verifyOpts []Option
	logger     *slog.Logger
	observe    func(Result)
}

// WithVerifyOptions passes options through to Verify.
func WithVerifyOptions(opts ...Option) MiddlewareOption {
	return func(c *middlewareConfig) { c.verifyOpts = append(c.verifyOpts, opts...) }
}

// WithMiddlewareLogger logs rejected requests.
func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) { c.logger = l }
}

// WithObserver is called with every verification result, e.g. for metrics.
func WithObserver(fn func(Result)) MiddlewareOption {
	return func(c *middlewareConfig) { c.observe = fn }
}

// Middleware verifies "Authorization: tma <init data>" on every request and
// stores the verified Data in the request context. Failed requests get a
// JSON error with the stable code and never reach next.
func Middleware(botToken string, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := Verify(FromAuthorization(r.Header.Get("Authorization")), botToken, cfg.verifyOpts...)
			if cfg.observe != nil {
				cfg.observe(res)
			}
			if !res.OK {
				if cfg.logger != nil {
					cfg.logger.WarnContext(r.Context(), "init data rejected",
						slog.String("code", string(res.Error)),
						slog.String("path", r.URL.Path),
					)
				}
				WriteError(w, res)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.Data)))
		})
	}
}

// FromAuthorization extracts raw init data from an Authorization header
// value. It returns "" when the scheme is not tma.
func FromAuthorization(header string) string {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, AuthScheme) {
		return ""
	}
	return strings.TrimSpace(raw)
}

// HTTPStatus maps a failure code to a response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeMissingInitData, CodeMissingHash, CodeInvalidJSON, CodeInvalidPayload:
		return http.StatusBadRequest
	case CodeHashMismatch, CodeExpired, CodeInvalidAuthDate:
		return http.StatusUnauthorized
	case CodeMissingBotToken, CodeCryptoUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusUnauthorized
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError renders a failed Result as {"error": {"code", "message"}}.
func WriteError(w http.ResponseWriter, res Result) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(HTTPStatus(res.Error))
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Code: string(res.Error), Message: res.Message}})
}
