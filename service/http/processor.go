package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/derekparker/trie"

	"github.com/PromiseAll/memory-tool/pkg/probe"
	"github.com/PromiseAll/memory-tool/utils"
)

const defaultStringLength = 256

type Router struct {
	method string
	path   string
	fn     func(ctx *Context)
}

type processor struct {
	probe  *probe.Probe
	router []*Router
	trie   *trie.Trie
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

func newProcessor(p *probe.Probe) (*processor, error) {
	proc := &processor{
		probe: p,
	}

	register(proc)
	return proc, nil
}

// args resolves the expression, checks the command word and a minimum
// argument count.
func (ctx *Context) args(cmd string, min int) ([]string, bool) {
	got, args, err := ctx.expr.resolve()
	if err != nil {
		ctx.respFailed(http.StatusBadRequest, err.Error())
		return nil, false
	}
	if strings.ToLower(got) != cmd {
		ctx.respFailed(http.StatusBadRequest, fmt.Sprintf("invalid command: %s", got))
		return nil, false
	}
	if len(args) < min {
		ctx.respFailed(http.StatusBadRequest, fmt.Sprintf("invalid number of arguments: %d", len(args)))
		return nil, false
	}
	return args, true
}

// resolveTarget turns an address expression plus optional chain offsets
// into the effective address.
func resolveTarget(p *probe.Probe, addrExpr string, offsetArgs []string) (uint64, error) {
	base, err := p.ParseAddress(addrExpr)
	if err != nil {
		return 0, err
	}
	if len(offsetArgs) == 0 {
		return base, nil
	}

	offsets, err := probe.ParseOffsets(offsetArgs)
	if err != nil {
		return 0, err
	}
	return p.ResolveChain(base, offsets)
}

func register(p *processor) {
	r := []*Router{
		{
			method: http.MethodGet,
			path:   "/probe",
			fn: func(ctx *Context) {
				ctx.respSuccess(nil)
			},
		},
		{
			method: http.MethodGet,
			path:   "/read",
			fn: func(ctx *Context) {
				args, ok := ctx.args("read", 2)
				if !ok {
					return
				}

				kindStr := args[0]
				if kindStr == "str" {
					addr, err := p.probe.ParseAddress(args[1])
					if err != nil {
						ctx.respFailed(http.StatusBadRequest, err.Error())
						return
					}
					max := defaultStringLength
					if len(args) > 2 {
						if max, err = strconv.Atoi(args[2]); err != nil {
							ctx.respFailed(http.StatusBadRequest, err.Error())
							return
						}
					}
					s, err := p.probe.ReadString(addr, max)
					if err != nil {
						ctx.respFailed(http.StatusInternalServerError, err.Error())
						return
					}
					ctx.respSuccess(s)
					return
				}

				kind, err := probe.ParseKind(kindStr)
				if err != nil {
					ctx.respFailed(http.StatusBadRequest, err.Error())
					return
				}
				addr, err := resolveTarget(p.probe, args[1], args[2:])
				if err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				value, err := p.probe.ReadKind(kind, addr)
				if err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				ctx.respSuccess(fmt.Sprintf("%s at %#x = %s", kind, addr, value))
			},
		},
		{
			method: http.MethodPost,
			path:   "/write",
			fn: func(ctx *Context) {
				args, ok := ctx.args("write", 3)
				if !ok {
					return
				}

				kind, err := probe.ParseKind(args[0])
				if err != nil {
					ctx.respFailed(http.StatusBadRequest, err.Error())
					return
				}
				addr, err := resolveTarget(p.probe, args[1], args[3:])
				if err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				if err := p.probe.WriteKind(kind, addr, args[2]); err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				value, err := p.probe.ReadKind(kind, addr)
				if err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				ctx.respSuccess(fmt.Sprintf("%s at %#x = %s", kind, addr, value))
			},
		},
		{
			method: http.MethodGet,
			path:   "/chain",
			fn: func(ctx *Context) {
				args, ok := ctx.args("chain", 1)
				if !ok {
					return
				}

				addr, err := resolveTarget(p.probe, args[0], args[1:])
				if err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				ctx.respSuccess(fmt.Sprintf("%#x", addr))
			},
		},
		{
			method: http.MethodGet,
			path:   "/inst",
			fn: func(ctx *Context) {
				args, ok := ctx.args("inst", 2)
				if !ok {
					return
				}

				addr, err := p.probe.ParseAddress(args[0])
				if err != nil {
					ctx.respFailed(http.StatusBadRequest, err.Error())
					return
				}
				length, err := strconv.Atoi(args[1])
				if err != nil {
					ctx.respFailed(http.StatusBadRequest, err.Error())
					return
				}
				hex, err := p.probe.ReadInstruction(addr, length)
				if err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				ctx.respSuccess(hex)
			},
		},
		{
			method: http.MethodPost,
			path:   "/patch",
			fn: func(ctx *Context) {
				args, ok := ctx.args("patch", 2)
				if !ok {
					return
				}

				addr, err := p.probe.ParseAddress(args[0])
				if err != nil {
					ctx.respFailed(http.StatusBadRequest, err.Error())
					return
				}
				hexBytes := strings.Join(args[1:], " ")
				if err := p.probe.WriteInstruction(addr, hexBytes); err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				data, _ := probe.ParseHex(hexBytes)
				readBack, err := p.probe.ReadInstruction(addr, len(data))
				if err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				ctx.respSuccess(readBack)
			},
		},
		{
			method: http.MethodPost,
			path:   "/nop",
			fn: func(ctx *Context) {
				args, ok := ctx.args("nop", 2)
				if !ok {
					return
				}

				addr, err := p.probe.ParseAddress(args[0])
				if err != nil {
					ctx.respFailed(http.StatusBadRequest, err.Error())
					return
				}
				length, err := strconv.Atoi(args[1])
				if err != nil {
					ctx.respFailed(http.StatusBadRequest, err.Error())
					return
				}
				if err := p.probe.NopInstruction(addr, length); err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				readBack, err := p.probe.ReadInstruction(addr, length)
				if err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				ctx.respSuccess(readBack)
			},
		},
		{
			method: http.MethodGet,
			path:   "/modules",
			fn: func(ctx *Context) {
				if _, ok := ctx.args("modules", 0); !ok {
					return
				}

				modules, err := p.probe.Modules()
				if err != nil {
					ctx.respFailed(http.StatusInternalServerError, err.Error())
					return
				}
				var buf strings.Builder
				for _, m := range modules {
					fmt.Fprintf(&buf, "%s  %#x-%#x  %d\n", m.Name, m.Base, m.End, m.Size)
				}
				ctx.respSuccess(buf.String())
			},
		},
	}

	p.router = r

	t := trie.New()
	for _, router := range p.router {
		md5 := utils.MD5(methodPath(router.method, router.path))
		t.Add(md5, router.fn)
	}

	p.trie = t
}

func methodPath(method, path string) string {
	return fmt.Sprintf("%s:%s", method, path)
}
