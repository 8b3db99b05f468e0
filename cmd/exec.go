package cmd

import (
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/urfave/cli"

	"github.com/PromiseAll/memory-tool/pkg/probe"
	"github.com/PromiseAll/memory-tool/pkg/terminal"
	"github.com/PromiseAll/memory-tool/pkg/winsys"
	"github.com/PromiseAll/memory-tool/service"
	"github.com/PromiseAll/memory-tool/service/http"
	"github.com/PromiseAll/memory-tool/utils"
)

type ExecType int

const (
	Read ExecType = iota
	Write
	Inst
	Patch
	Nop
	Modules
	Ps
	Attach
	Conn
)

const (
	defaultAddr = "127.0.0.1:0"
)

type executor struct {
	et    ExecType
	pid   uint32
	ctx   *cli.Context
	probe *probe.Probe
}

func newExecutor(et ExecType, pid uint32, ctx *cli.Context) (*executor, error) {
	e := &executor{
		et:  et,
		pid: pid,
		ctx: ctx,
	}

	switch et {
	case Ps, Modules, Conn:
		// No target handle needed.
	default:
		arch, err := probe.ParseArch(ctx.String("arch"))
		if err != nil {
			return nil, err
		}

		p, err := probe.Attach(pid, arch, ctx.Bool("debug"))
		if err != nil {
			return nil, err
		}
		e.probe = p
	}

	return e, nil
}

func (e *executor) run() error {
	switch e.et {
	case Read:
		return e.read()
	case Write:
		return e.write()
	case Inst:
		return e.inst()
	case Patch:
		return e.patch()
	case Nop:
		return e.nop()
	case Modules:
		return e.modules()
	case Ps:
		return e.ps()
	case Attach:
		return e.attach()
	case Conn:
		args := e.ctx.Args()
		return e.connect(args.First())
	}

	return nil
}

func exec(et ExecType, pid uint32, ctx *cli.Context) error {
	ex, err := newExecutor(et, pid, ctx)
	if err != nil {
		return err
	}
	if ex.probe != nil {
		defer ex.probe.Close()
	}

	return ex.run()
}

// resolveTarget applies the optional pointer chain to the address
// expression.
func (e *executor) resolveTarget(addrExpr string, offsetArgs []string) (uint64, error) {
	base, err := e.probe.ParseAddress(addrExpr)
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
	return e.probe.ResolveChain(base, offsets)
}

func (e *executor) read() error {
	args := e.ctx.Args()
	r := rArgs(args)

	if r.kind == "str" {
		addr, err := e.probe.ParseAddress(r.addr)
		if err != nil {
			return err
		}
		s, err := e.probe.ReadString(addr, r.strMax())
		if err != nil {
			return err
		}
		utils.PrintStringLine(s)
		return nil
	}

	kind, err := probe.ParseKind(r.kind)
	if err != nil {
		return err
	}

	addr, err := e.resolveTarget(r.addr, r.offsets)
	if err != nil {
		return err
	}

	value, err := e.probe.ReadKind(kind, addr)
	if err != nil {
		return err
	}

	utils.PrintStringLine(fmt.Sprintf("%s at %#x = %s", kind, addr, value))
	return nil
}

func (e *executor) write() error {
	args := e.ctx.Args()
	w := wArgs(args)

	kind, err := probe.ParseKind(w.kind)
	if err != nil {
		return err
	}

	addr, err := e.resolveTarget(w.addr, w.offsets)
	if err != nil {
		return err
	}

	if err := e.probe.WriteKind(kind, addr, w.value); err != nil {
		return err
	}

	value, err := e.probe.ReadKind(kind, addr)
	if err != nil {
		return err
	}

	utils.PrintStringLine(fmt.Sprintf("%s at %#x = %s", kind, addr, value))
	return nil
}

func (e *executor) inst() error {
	args := e.ctx.Args()
	i := iArgs(args)

	addr, err := e.probe.ParseAddress(i.addr)
	if err != nil {
		return err
	}

	hex, err := e.probe.ReadInstruction(addr, i.length)
	if err != nil {
		return err
	}

	utils.PrintStringLine(hex)
	return nil
}

func (e *executor) patch() error {
	args := e.ctx.Args()

	addr, err := e.probe.ParseAddress(args.Get(1))
	if err != nil {
		return err
	}

	hexBytes := strings.Join(args[2:], " ")
	if err := e.probe.WriteInstruction(addr, hexBytes); err != nil {
		return err
	}

	data, _ := probe.ParseHex(hexBytes)
	readBack, err := e.probe.ReadInstruction(addr, len(data))
	if err != nil {
		return err
	}

	utils.PrintStringLine(readBack)
	return nil
}

func (e *executor) nop() error {
	args := e.ctx.Args()
	i := iArgs(args)

	addr, err := e.probe.ParseAddress(i.addr)
	if err != nil {
		return err
	}

	if err := e.probe.NopInstruction(addr, i.length); err != nil {
		return err
	}

	readBack, err := e.probe.ReadInstruction(addr, i.length)
	if err != nil {
		return err
	}

	utils.PrintStringLine(readBack)
	return nil
}

func (e *executor) modules() error {
	modules, err := winsys.Modules(e.pid)
	if err != nil {
		return err
	}

	utils.PrintModules(modules)
	return nil
}

func (e *executor) ps() error {
	processes, err := winsys.Processes()
	if err != nil {
		return err
	}

	utils.PrintProcesses(processes)
	return nil
}

func (e *executor) attach() error {
	var server service.Server
	ctx := e.ctx

	listener, err := net.Listen("tcp", defaultAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	srv := ctx.String("srv")
	switch srv {
	case "http":
		server = http.NewServer(ctx, listener, e.probe)
	default:
		server = http.NewServer(ctx, listener, e.probe)
	}

	defer server.Stop()
	if err := server.Run(); err != nil {
		return err
	}

	return e.connect(listener.Addr().String())
}

func (e *executor) connect(addr string) (err error) {
	var client service.Client
	srv := e.ctx.String("srv")
	switch srv {
	case "http":
		fallthrough
	default:
		client, err = http.NewClient(addr)
		if err != nil {
			return
		}
	}

	term := terminal.New(client)
	return term.Run()
}
