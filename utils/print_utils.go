package utils

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/PromiseAll/memory-tool/pkg/winsys"
)

func PrintProcesses(processes []winsys.ProcessInfo) {
	w := new(tabwriter.Writer)
	w.Init(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "PID\tNAME")
	for _, p := range processes {
		fmt.Fprintf(w, "%d\t%s\n", p.PID, p.Name)
	}
	w.Flush()
}

func PrintModules(modules []winsys.Module) {
	w := new(tabwriter.Writer)
	w.Init(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBASE\tEND\tSIZE")
	for _, m := range modules {
		fmt.Fprintf(w, "%s\t%#x\t%#x\t%d\n", m.Name, m.Base, m.End, m.Size)
	}
	w.Flush()
}

func PrintStringLine(s ...string) {
	for _, str := range s {
		fmt.Println(str)
	}
}
