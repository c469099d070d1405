package api

import (
	"net/http"

	"github.com/dmitrymomot/platformkit/pkg/initdata"
	"github.com/dmitrymomot/platformkit/pkg/logger"
)

type verifyRequest struct {
	InitData string `json:"init_data"`
}

func (s *server) verify(r *http.Request, req verifyRequest) Response {
	res := initdata.Verify(req.InitData, s.cfg.BotToken, s.verifyOptions()...)
	s.metrics.ObserveVerification(res)
	if !res.OK {
		s.log.WarnContext(r.Context(), "init data rejected", logger.Code(string(res.Error)))
		return verifyFailure(res)
	}
	return JSON(res.Data)
}

// verifyFailure answers with the verifier's stable code and status.
func verifyFailure(res initdata.Result) Response {
	return responseFunc(func(w http.ResponseWriter, _ *http.Request) error {
		initdata.WriteError(w, res)
		return nil
	})
}

func (s *server) me(r *http.Request, _ struct{}) Response {
	user, ok := initdata.UserFromContext(r.Context())
	if !ok {
		return JSONError(ErrUnauthorized)
	}
	return JSON(user)
}
