package http

const (
	requestIDHeader = "X-Request-Id"
	// commands are a single line, anything larger is not one
	maxBodySize = 1 << 16
)

type request struct {
	requestID string
	method    string
	url       string
	body      []byte
	clientIP  string
	path      string
}

// response is the JSON envelope of every reply. Data holds the command
// output on success; Msg holds the error otherwise.
type response struct {
	Status int         `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data"`
}
