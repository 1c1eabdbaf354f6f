package terminal

import (
	"fmt"
	"io"
	"memscan/service"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/derekparker/trie"
	"github.com/go-delve/liner"
)

const (
	prompt                             = "(memscan) "
	memscanDir                         = ".memscan"
	historyFile                 string = ".memscan_history"
	terminalHighlightEscapeCode string = "\033[%2dm"
	terminalResetEscapeCode     string = "\033[0m"
)

// Term is the interactive prompt. Every command line is forwarded to a
// scan session through client.
type Term struct {
	client      service.Client
	prompt      string
	line        *liner.State
	cmds        *Commands
	historyFile *os.File
	stdout      *transcriptWriter
}

func New(client service.Client) *Term {
	return &Term{
		client: client,
		line:   liner.NewLiner(),
		prompt: prompt,
		stdout: newTranscriptWriter(),
		cmds:   NewCommands(client),
	}
}

// A scan is never interrupted halfway, so SIGINT only tells the user how
// to leave.
func (t *Term) sigintGuard(ch <-chan os.Signal) {
	for range ch {
		fmt.Fprintln(t.stdout, "received SIGINT, type exit to quit")
	}
}

// completer returns the command aliases starting with the typed line.
func (t *Term) completer() liner.Completer {
	aliases := trie.New()
	for _, cmd := range t.cmds.cmds {
		for _, alias := range cmd.aliases {
			aliases.Add(alias, nil)
		}
	}

	return func(line string) []string {
		return aliases.PrefixSearch(line)
	}
}

func historyPath() string {
	home := "."
	if usr, err := user.Current(); err == nil {
		home = usr.HomeDir
	}
	return filepath.Join(home, memscanDir, historyFile)
}

// loadHistory opens the history file and feeds it to the line editor. A
// missing or unreadable history only disables saving it.
func (t *Term) loadHistory() {
	path := historyPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to create %s: %v. History will not be saved.\n", filepath.Dir(path), err)
		return
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open history file: %v. History will not be saved.\n", err)
		return
	}
	if _, err := t.line.ReadHistory(f); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read history file %s: %v\n", path, err)
	}
	t.historyFile = f
}

func (t *Term) saveHistory() error {
	if t.historyFile == nil {
		return nil
	}
	defer t.historyFile.Close()

	if _, err := t.historyFile.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := t.line.WriteHistory(t.historyFile); err != nil {
		return fmt.Errorf("write history: %v", err)
	}
	return nil
}

func (t *Term) Run() error {
	defer t.Close()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT)
	defer signal.Stop(ch)
	go t.sigintGuard(ch)

	t.line.SetCompleter(t.completer())
	t.loadHistory()

	fmt.Fprintln(t.stdout, "Type 'help' for list of commands.")

	for {
		cmd, err := t.promptForInput()
		if err == io.EOF {
			fmt.Fprintln(t.stdout, "exit")
			return t.saveHistory()
		}
		if err != nil {
			return fmt.Errorf("prompt for input failed: %v", err)
		}
		t.stdout.Echo(t.prompt + cmd + "\n")

		if strings.TrimSpace(cmd) == "" {
			continue
		}

		if err := t.cmds.Call(cmd, t); err != nil {
			if _, ok := err.(ExitRequestError); ok {
				return t.saveHistory()
			}

			t.RedirectTo(os.Stderr)
			t.stdout.Highlight(colorRed, fmt.Sprintf("Command failed: %s\n", err))
		}

		t.stdout.Flush()
		t.stdout.pw.Reset()
	}
}

func (t *Term) Close() {
	t.line.Close()
	if err := t.stdout.CloseTranscript(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing transcript file: %v\n", err)
	}
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

// RedirectTo redirects the output of this terminal to the specified writer.
func (t *Term) RedirectTo(w io.Writer) {
	t.stdout.pw.w = w
}
