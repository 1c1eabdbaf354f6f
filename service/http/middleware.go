package http

import (
	"encoding/json"
	"io"
	"memscan/utils"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Handler func(ctx *Context)

type HandlerChain []Handler

// httpHandlerChain wraps do with request decoding. Every request is logged
// once it completes, failed or not.
func httpHandlerChain(do Handler) HandlerChain {
	return []Handler{
		parseRequest,
		parseExpression,
		do,
	}
}

func (h HandlerChain) exec(ctx *Context) {
	ctx.start = time.Now()
	for _, handler := range h {
		handler(ctx)
		if ctx.aborted {
			break
		}
	}
	logExchange(ctx)
}

func parseRequest(ctx *Context) {
	if ctx.read == nil {
		return
	}

	id := ctx.read.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	ctx.write.Header().Set(requestIDHeader, id)

	r := &request{
		requestID: id,
		url:       utils.GetFullURL(ctx.read),
		path:      ctx.read.URL.Path,
		method:    ctx.read.Method,
		clientIP:  utils.GetClientIP(ctx.read),
	}
	ctx.request = r

	bs, err := io.ReadAll(io.LimitReader(ctx.read.Body, maxBodySize))
	if err != nil {
		ctx.respFailed(http.StatusBadRequest, err.Error())
		return
	}
	r.body = bs
}

func parseExpression(ctx *Context) {
	req := ctx.request
	if req == nil || len(req.body) == 0 {
		return
	}

	exr := new(Expression)
	if err := json.Unmarshal(req.body, exr); err != nil {
		ctx.respFailed(http.StatusBadRequest, err.Error())
		return
	}
	ctx.expr = exr
}

func logExchange(ctx *Context) {
	logger := ctx.logger
	req, res := ctx.request, ctx.response
	if logger == nil || req == nil {
		return
	}

	logger.Debugf("[%s] %s %s from %s body=%s", req.requestID, req.method, req.url, req.clientIP, req.body)
	if res == nil {
		logger.Warnf("[%s] no response written", req.requestID)
		return
	}

	elapsed := time.Since(ctx.start)
	if res.Status != http.StatusOK {
		logger.Warnf("[%s] %d %q in %s", req.requestID, res.Status, res.Msg, elapsed)
		return
	}
	logger.Infof("[%s] %d in %s data=%+v", req.requestID, res.Status, elapsed, res.Data)
}
