package logflags

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const DefaultLogDesc = "stderr"

// Logger is the subset of zap's sugared logger the rest of the tool
// depends on.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

var (
	http   bool
	engine bool

	logOut io.Writer = os.Stderr
)

// Setup enables the logger components named in logStr (comma separated)
// and points their output at logDesc, which is either "stderr" or a file
// path.
func Setup(flag bool, logStr, logDesc string) error {
	if !flag {
		return nil
	}

	for _, component := range strings.Split(logStr, ",") {
		switch strings.TrimSpace(component) {
		case "http":
			http = true
		case "engine":
			engine = true
		case "":
		default:
			return fmt.Errorf("invalid log component %q", component)
		}
	}

	if logDesc != "" && logDesc != DefaultLogDesc {
		f, err := os.OpenFile(logDesc, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		logOut = f
	}

	return nil
}
