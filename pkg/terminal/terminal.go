package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"path"
	"strings"
	"syscall"

	"github.com/derekparker/trie"
	"github.com/go-delve/liner"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/PromiseAll/memory-tool/service"
)

const (
	prompt             = "(mem) "
	toolDir            = ".memtool"
	historyFile string = ".memtool_history"
)

type Term struct {
	client      service.Client
	prompt      string
	line        *liner.State
	cmds        *Commands
	historyFile *os.File
	stdout      io.Writer
}

func New(client service.Client) *Term {
	var stdout io.Writer = os.Stdout
	if isatty.IsTerminal(os.Stdout.Fd()) {
		stdout = colorable.NewColorableStdout()
	}

	t := &Term{
		client: client,
		line:   liner.NewLiner(),
		prompt: prompt,
		stdout: stdout,
		cmds:   NewCommands(client),
	}

	return t
}

func (t *Term) sigintGuard(ch <-chan os.Signal) {
	for range ch {
		fmt.Fprintf(t.stdout, "received SIGINT, stopping process (will not forward signal)\n")
	}
}

func (t *Term) Run() error {
	defer t.Close()

	var (
		err error
	)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go t.sigintGuard(ch)

	cmds := trie.New()
	for _, cmd := range t.cmds.cmds {
		for _, alias := range cmd.aliases {
			cmds.Add(alias, nil)
		}
	}

	t.line.SetCompleter(func(line string) (c []string) {
		c = cmds.PrefixSearch(line)
		return
	})

	userHomeDir := getUserHomeDir()
	fullHistory := path.Join(userHomeDir, toolDir, historyFile)

	t.historyFile, err = os.OpenFile(fullHistory, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(parentDir(fullHistory), 0755); err != nil {
				return fmt.Errorf("create parent dir failed: %v", err)
			}

			t.historyFile, err = os.OpenFile(fullHistory, os.O_CREATE|os.O_RDWR, 0600)
		} else {
			fmt.Printf("Unable to open history file: %v. History will not be saved for this session.\n", err)
			return err
		}
	}

	if _, err = t.line.ReadHistory(t.historyFile); err != nil {
		fmt.Printf("Unable to read history file %s: %v\n", fullHistory, err)
		return err
	}

	fmt.Println("Type 'help' for list of commands.")

	for {
		cmd, err := t.promptForInput()
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(t.stdout, "exit")
				return t.handleExit()
			}
			return errors.New("Prompt for input failed.\n")
		}

		if strings.TrimSpace(cmd) == "" {
			continue
		}

		if err = t.cmds.Call(cmd, t); err != nil {
			if _, ok := err.(ExitRequestError); ok {
				return t.handleExit()
			}

			fmt.Fprintf(os.Stderr, "Command failed: %s\n", err)
		}
	}
}

func (t *Term) Close() {
	t.line.Close()
}

func getUserHomeDir() string {
	userHomeDir := "."
	usr, err := user.Current()
	if err == nil {
		userHomeDir = usr.HomeDir
	}
	return userHomeDir
}

func (t *Term) promptForInput() (string, error) {
	l, err := t.line.Prompt(t.prompt)
	if err != nil {
		return "", err
	}

	l = strings.TrimSuffix(l, "\n")
	if l != "" {
		t.line.AppendHistory(l)
	}

	return l, nil
}

func (t *Term) handleExit() error {
	if t.historyFile != nil {
		if _, err := t.line.WriteHistory(t.historyFile); err != nil {
			fmt.Println("readline history error:", err)
			return err
		}
		if err := t.historyFile.Close(); err != nil {
			fmt.Printf("error closing history file: %s\n", err)
			return err
		}
	}

	return nil
}

func parentDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == os.PathSeparator {
			return path[:i]
		}
	}
	return ""
}
