package http

import (
	"encoding/json"
	"memscan/pkg/logflags"
	"net/http"
	"time"
)

// Context follows one request through the handler chain.
type Context struct {
	logger   logflags.Logger
	start    time.Time
	expr     *Expression
	aborted  bool
	request  *request
	response *response
	read     *http.Request
	write    http.ResponseWriter
}

func newContext(logger logflags.Logger, w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		logger: logger,
		read:   r,
		write:  w,
	}
}

func (c *Context) respSuccess(data interface{}) {
	c.reply(http.StatusOK, "", data)
}

// respFailed replies with an error and stops the handler chain.
func (c *Context) respFailed(code int, message string) {
	c.reply(code, message, nil)
	c.aborted = true
}

func (c *Context) reply(status int, msg string, data interface{}) {
	if c.response != nil {
		return
	}
	c.response = &response{Status: status, Msg: msg, Data: data}

	bs, err := json.Marshal(c.response)
	if err != nil {
		http.Error(c.write, err.Error(), http.StatusInternalServerError)
		return
	}

	h := c.write.Header()
	h.Set("Content-Type", "application/json")
	c.write.WriteHeader(status)
	c.write.Write(bs)
}
