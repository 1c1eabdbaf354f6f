package http

import (
	"fmt"
	"memscan/service"
	"memscan/utils"
	"net/http"

	"github.com/derekparker/trie"
)

type Router struct {
	method string
	path   string
	fn     func(ctx *Context)
}

type route struct {
	method string
	path   string
}

// cmdRoutes maps every session command to its endpoint. Commands that change
// slot state are POSTs.
var cmdRoutes = map[service.CmdType]route{
	service.Memscan:   {http.MethodPost, "/memscan"},
	service.SlotClear: {http.MethodPost, "/slotclear"},
	service.SlotInfo:  {http.MethodGet, "/slotinfo"},
	service.SlotList:  {http.MethodGet, "/slotls"},
	service.Regions:   {http.MethodGet, "/regions"},
	service.Read:      {http.MethodGet, "/read"},
}

type processor struct {
	session *service.Session
	router  []*Router
	trie    *trie.Trie
}

func (p *processor) route(method, path string) func(ctx *Context) {
	node, found := p.trie.Find(utils.MD5(methodPath(method, path)))
	if found {
		fn := node.Meta().(func(ctx *Context))
		return fn
	}

	return nil
}

func (p *processor) worker(ctx *Context) {
	req := ctx.request
	fn := p.route(req.method, req.path)
	if fn == nil {
		ctx.respFailed(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	fn(ctx)
}

func newProcessor(s *service.Session) *processor {
	proc := &processor{
		session: s,
	}

	register(proc)
	return proc
}

func register(p *processor) {
	r := []*Router{
		{
			method: http.MethodGet,
			path:   "/ping",
			fn: func(ctx *Context) {
				ctx.respSuccess(nil)
			},
		},
	}
	for cmd, rt := range cmdRoutes {
		r = append(r, &Router{
			method: rt.method,
			path:   rt.path,
			fn:     p.command(cmd),
		})
	}

	p.router = r

	t := trie.New()
	for _, router := range p.router {
		md5 := utils.MD5(methodPath(router.method, router.path))
		t.Add(md5, router.fn)
	}

	p.trie = t
}

// command builds the handler running cmd against the session.
func (p *processor) command(cmd service.CmdType) func(ctx *Context) {
	return func(ctx *Context) {
		if ctx.expr == nil {
			ctx.respFailed(http.StatusBadRequest, "missing expression")
			return
		}

		name, args, err := ctx.expr.resolve()
		if err != nil {
			ctx.respFailed(http.StatusBadRequest, err.Error())
			return
		}
		if name != cmd.String() {
			ctx.respFailed(http.StatusBadRequest, fmt.Sprintf("invalid command: %s", name))
			return
		}

		res, err := p.session.Exec(cmd, args)
		if err != nil {
			ctx.respFailed(httpStatus(err), err.Error())
			return
		}

		ctx.respSuccess(res)
	}
}

func httpStatus(err error) int {
	switch service.Classify(err) {
	case service.ClassInvalid:
		return http.StatusBadRequest
	case service.ClassConflict:
		return http.StatusConflict
	case service.ClassNotFound:
		return http.StatusNotFound
	case service.ClassUnavailable:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func methodPath(method, path string) string {
	return fmt.Sprintf("%s:%s", method, path)
}
