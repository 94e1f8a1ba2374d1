package live

// Frame types exchanged with the thin client.
const (
	// frameHello is the first client→server frame, carrying the initial
	// query string.
	frameHello = "hello"

	// frameNavigate is a client→server frame sent when the user navigated
	// (popstate).
	frameNavigate = "navigate"

	// frameURL is a server→client frame instructing the client to apply a
	// query update.
	frameURL = "url"
)

// Frame modes for frameURL.
const (
	modeReplace = "replace"
	modePush    = "push"
)

// frame is the wire format for all session traffic. Query carries the raw
// query string without a leading "?".
type frame struct {
	Type  string `json:"type"`
	Query string `json:"query,omitempty"`
	Mode  string `json:"mode,omitempty"`
}
