package service

import (
	"net"

	"github.com/PromiseAll/memory-tool/pkg/logflags"
)

// CmdType selects the engine operation a client command maps to.
type CmdType int

const (
	Read CmdType = iota
	Write
	Chain
	Inst
	Patch
	Nop
	Modules
)

// Server represents a server for a remote client
// to connect to.
type Server interface {
	Run() error
	Stop() error
}

// Client sends one command expression to a server and returns its
// textual result.
type Client interface {
	SendExpr(cmdType CmdType, args string) (string, error)
}

type ServerImpl struct {
	Logger   logflags.Logger
	Listener net.Listener
	StopChan chan struct{}
}

func (si *ServerImpl) SetupLogger(flag bool, logStr, logDest string) error {
	err := logflags.Setup(flag, logStr, logDest)
	if err != nil {
		return err
	}

	si.Logger = logflags.HTTPLogger()
	return nil
}
