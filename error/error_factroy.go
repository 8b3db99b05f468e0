package error

import "errors"

var (
	ProcessNotFound          = errors.New("process not found")
	AmbiguousName            = errors.New("process name matches more than one process")
	ArchitectureUndetermined = errors.New("target architecture could not be determined")
	AccessDenied             = errors.New("access to target process denied")
	InvalidAddress           = errors.New("invalid address")
	PartialTransfer          = errors.New("partial memory transfer")
	MemoryAccessFailure      = errors.New("target memory inaccessible")
	NullPointerInChain       = errors.New("null pointer in chain")
	ModuleNotFound           = errors.New("module not found")
	MalformedHexInput        = errors.New("malformed hex input")
	ProtectionRestoreFailed  = errors.New("failed to restore memory protection")
)
