// Package initdata verifies the signed init data a messaging platform hands
// to a mini-app when it launches.
//
// The payload is a URL query string. One field, hash, is a hex HMAC-SHA256
// over every other field rendered as sorted key=value lines. The signing key
// is itself HMAC-SHA256(key="WebAppData", message=botToken), so only the
// bot's backend can check it.
//
// Verification never panics and never returns partial data. Every failure
// is a Result with one of nine stable codes:
//
//	res := initdata.Verify(raw, botToken, initdata.WithMaxAge(10*time.Minute))
//	if !res.OK {
//		http.Error(w, res.Message, initdata.HTTPStatus(res.Error))
//		return
//	}
//	fmt.Println(res.Data.User.ID)
//
// Each call is independent: the package keeps no replay state.
//
// Middleware wraps the same check for HTTP handlers that receive the payload
// as "Authorization: tma <init data>", and FromContext returns the verified
// Data downstream.
package initdata
