// The fcp command is a drop-in faster replacement for "cp -R". Given one or
// more source paths and a destination, it reproduces each source at the
// destination while exploiting kernel-accelerated copy primitives and
// parallelizing both directory traversal and per-file work over a worker
// pool; see internal/cp for the engine itself.
//
// When stderr is a terminal, fcp shows an animated progress bar in the
// teacher's bubbletea idiom. Piped or redirected, it falls back to writing
// each error line to stderr as it happens and nothing else, so scripts and
// tests get a byte-stable, line-oriented error stream.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rhogenson/container/deque"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/rhogenson/fcp/internal/cp"
)

const version = "fcp version 1.0.0"

var (
	force       = flag.Bool("f", false, "if a symlink or FIFO cannot be created over an existing destination, remove it and try again")
	help        = flag.Bool("h", false, "show this help message and exit")
	showVersion = flag.Bool("V", false, "print the version number and exit")
)

func init() {
	flag.BoolVar(help, "help", false, "show this help message and exit")
	flag.BoolVar(showVersion, "version", false, "print the version number and exit")
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: fcp [OPTION]... SOURCE DEST
  or:  fcp [OPTION]... SOURCE... DIRECTORY

Copy SOURCE to DEST, or multiple SOURCE(s) into DIRECTORY, recursively and
in parallel. File type, permission bits, and symbolic link targets are
preserved; ownership, timestamps, and extended attributes are not.

Options:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Fprintln(os.Stderr, version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}

	opts := cp.Options{Force: *force}

	// Clear the umask so that files and directories created with the
	// source's mode bits keep exactly those bits.
	unix.Umask(0)

	if !term.IsTerminal(int(os.Stderr.Fd())) {
		if cp.Copy(os.Stderr, cp.NopProgress{}, args, opts) == cp.ErrorOccurred {
			os.Exit(1)
		}
		return
	}
	if runInteractive(args, opts) == cp.ErrorOccurred {
		os.Exit(1)
	}
}

type measurement struct {
	t time.Time
	n int64
}

type model struct {
	progress progress.Model

	max     int64
	current atomic.Int64

	measurements deque.Deque[measurement]

	copyingFiles map[string]string
	copyingFile  string
	eta          time.Duration

	errs []string
	done bool
}

type (
	tickMsg time.Time
	maxMsg  int64
	fileStartMsg struct{ from, to string }
	fileDoneMsg  struct {
		name string
		err  error
	}
	doneMsg struct{ outcome cp.CopyOutcome }
)

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd { return tick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case maxMsg:
		m.max = int64(msg)
	case fileStartMsg:
		m.copyingFiles[msg.from] = msg.to
		if m.copyingFile == "" {
			m.copyingFile = msg.from
		}
	case fileDoneMsg:
		delete(m.copyingFiles, msg.name)
		if m.copyingFile == msg.name {
			m.copyingFile = ""
			for name := range m.copyingFiles {
				m.copyingFile = name
				break
			}
		}
		if msg.err != nil {
			m.errs = append(m.errs, msg.err.Error())
		}
	case doneMsg:
		m.done = true
		var cmd tea.Cmd
		if m.max > 0 {
			cmd = m.progress.SetPercent(1)
		}
		if !m.progress.IsAnimating() {
			return m, tea.Quit
		}
		return m, cmd

	case tickMsg:
		n := m.current.Load()
		now := time.Time(msg)
		if m.measurements.Len() == 0 || now.Sub(m.measurements.At(m.measurements.Len()-1).t) > 500*time.Millisecond {
			for m.measurements.Len() > 1 && now.Sub(m.measurements.At(0).t) > 2*time.Minute {
				m.measurements.PopFront()
			}
			m.measurements.PushBack(measurement{now, n})
			if m.max > 0 {
				first := m.measurements.At(0)
				if delta := n - first.n; delta != 0 {
					m.eta = time.Duration(float64(m.max-n) / float64(delta) * float64(now.Sub(first.t)))
				}
			}
		}
		cmds := []tea.Cmd{tick()}
		if m.max > 0 {
			cmds = append(cmds, m.progress.SetPercent(float64(n)/float64(m.max)))
		}
		return m, tea.Batch(cmds...)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		if m.done && !m.progress.IsAnimating() {
			return m, tea.Quit
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 4
	}
	return m, nil
}

var warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render

func (m *model) View() string {
	copying := ""
	if m.copyingFile != "" {
		copying = m.copyingFile + " -> " + m.copyingFiles[m.copyingFile]
	}
	etaStr := "calculating..."
	if m.eta > 0 {
		etaStr = m.eta.Round(time.Second).String()
	}
	return "\n" +
		"  " + copying + "\n" +
		"  " + m.progress.View() + "\n" +
		"  ETA: " + etaStr + "\n\n" +
		warningStyle(strings.Join(m.errs, "\n")) + "\n"
}

// progressUpdater implements cp.Progress by forwarding every report to
// the running bubbletea program as a message.
type progressUpdater struct {
	p       *tea.Program
	current *atomic.Int64
}

func (pu *progressUpdater) Max(n int64)     { pu.p.Send(maxMsg(n)) }
func (pu *progressUpdater) Add(n int64)     { pu.current.Add(n) }
func (pu *progressUpdater) FileStart(from, to string) {
	pu.p.Send(fileStartMsg{from, to})
}
func (pu *progressUpdater) FileDone(name string, err error) {
	pu.p.Send(fileDoneMsg{name, err})
}

func runInteractive(args []string, opts cp.Options) cp.CopyOutcome {
	m := &model{
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		copyingFiles: make(map[string]string),
	}
	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithOutput(os.Stderr))

	var outcome cp.CopyOutcome
	go func() {
		outcome = cp.Copy(&errWriter{p}, &progressUpdater{p, &m.current}, args, opts)
		p.Send(doneMsg{outcome})
	}()
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cp.ErrorOccurred
	}
	return outcome
}

// errWriter adapts the line-oriented io.Writer that internal/cp writes
// error lines to into tea.Program messages, so every error surfaces in
// the animated view as soon as it's detected, matching §7's "errors are
// printed at the point of detection."
type errWriter struct{ p *tea.Program }

func (w *errWriter) Write(b []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(b), "\n"), "\n") {
		if line != "" {
			w.p.Send(fileDoneMsg{name: line, err: errLine(line)})
		}
	}
	return len(b), nil
}

// errLine turns a pre-formatted error line back into an error so it can
// flow through the same fileDoneMsg.err field the Progress interface
// already uses to populate m.errs.
type errLine string

func (e errLine) Error() string { return string(e) }
