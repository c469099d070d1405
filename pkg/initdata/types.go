package initdata

// User is the identity record embedded in init data as JSON.
type User struct {
	ID                    int64  `json:"id"`
	IsBot                 bool   `json:"is_bot,omitempty"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name,omitempty"`
	Username              string `json:"username,omitempty"`
	LanguageCode          string `json:"language_code,omitempty"`
	IsPremium             bool   `json:"is_premium,omitempty"`
	AddedToAttachmentMenu bool   `json:"added_to_attachment_menu,omitempty"`
	AllowsWriteToPM       bool   `json:"allows_write_to_pm,omitempty"`
	PhotoURL              string `json:"photo_url,omitempty"`
}

// Chat is the chat record embedded in init data when launched from a chat.
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// Data is verified init data. It only ever comes out of a successful Verify.
type Data struct {
	QueryID      string `json:"query_id,omitempty"`
	User         *User  `json:"user,omitempty"`
	Receiver     *User  `json:"receiver,omitempty"`
	Chat         *Chat  `json:"chat,omitempty"`
	ChatType     string `json:"chat_type,omitempty"`
	ChatInstance string `json:"chat_instance,omitempty"`
	StartParam   string `json:"start_param,omitempty"`
	CanSendAfter int64  `json:"can_send_after,omitempty"`
	AuthDate     int64  `json:"auth_date"`
	Hash         string `json:"hash"`

	// Fields holds every decoded field, including unknown ones.
	Fields map[string]string `json:"-"`
	// CheckString is the exact canonical string the signature covers.
	CheckString string `json:"-"`
	// Raw is the payload as received (or re-encoded for parsed input).
	Raw string `json:"-"`
}

// Result is the outcome of a verification. Failures are values, never panics,
// so callers can map Error straight to a response.
type Result struct {
	OK      bool   `json:"ok"`
	Data    *Data  `json:"data,omitempty"`
	Error   Code   `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err returns nil for a successful result and an *Error otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &Error{Code: r.Error, Message: r.Message}
}

// Pair is one key/value field of already-parsed init data.
type Pair struct {
	Key   string
	Value string
}
