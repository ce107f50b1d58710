package supervisor

import (
	"bufio"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/arthur-debert/mclaunch/pkg/filesystem"
	"github.com/arthur-debert/mclaunch/pkg/logging"
	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/rs/zerolog"
)

const maxLineSize = 1024 * 1024

// Options describes the process to start
type Options struct {
	Executable string
	Args       []string
	// Dir is the working directory; it is created if missing
	Dir string
	// Detached starts the process in its own group so it outlives the launcher
	Detached bool
	// Env replaces the inherited environment when non-nil
	Env []string
	// Sink receives output lines; defaults to a Log4jSink on the "game" logger
	Sink Sink
	// FS is used to create Dir; defaults to the host filesystem
	FS types.FS
}

// Process is a running child
type Process struct {
	cmd     *exec.Cmd
	readers sync.WaitGroup
	logger  zerolog.Logger

	waitOnce sync.Once
	waitErr  error
}

// Launch starts the process and returns without waiting for it to exit
func Launch(opts Options) (*Process, error) {
	logger := logging.GetLogger("supervisor")

	if opts.Executable == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no executable to launch")
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	sink := opts.Sink
	if sink == nil {
		sink = NewLog4jSink(logging.GetLogger("game"))
	}

	if opts.Dir != "" {
		if err := fsys.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create working directory %s", opts.Dir).
				WithDetail("path", opts.Dir)
		}
	}

	cmd := exec.Command(opts.Executable, opts.Args...)
	cmd.Dir = opts.Dir
	if opts.Env != nil {
		cmd.Env = opts.Env
	}
	if opts.Detached {
		cmd.SysProcAttr = detachedAttr()
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSpawn, "cannot attach stdout")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSpawn, "cannot attach stderr")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSpawn, "cannot start %s", opts.Executable).
			WithDetail("executable", opts.Executable)
	}

	p := &Process{cmd: cmd, logger: logger}
	p.readers.Add(2)
	go p.pump(stdout, Stdout, sink)
	go p.pump(stderr, Stderr, sink)

	logger.Info().
		Int("pid", cmd.Process.Pid).
		Str("executable", opts.Executable).
		Str("dir", opts.Dir).
		Bool("detached", opts.Detached).
		Msg("Process started")
	return p, nil
}

// PID returns the operating system process id
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Wait blocks until both streams are drained and the process exits.
// It is safe to call more than once.
func (p *Process) Wait() error {
	p.waitOnce.Do(func() {
		p.readers.Wait()
		p.waitErr = p.cmd.Wait()
		code := p.cmd.ProcessState.ExitCode()
		p.logger.Info().Int("pid", p.PID()).Int("exit_code", code).Msg("Process exited")
	})
	return p.waitErr
}

// Release lets the child run on without the launcher tracking it
func (p *Process) Release() error {
	return p.cmd.Process.Release()
}

func (p *Process) pump(r io.Reader, stream Stream, sink Sink) {
	defer p.readers.Done()
	if f, ok := sink.(Flusher); ok {
		defer f.Flush(stream)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			sink.Line(stream, line)
		}
	}
	if err := scanner.Err(); err != nil {
		p.logger.Warn().Err(err).Str("stream", string(stream)).Msg("Stream reader stopped")
		_, _ = io.Copy(io.Discard, r)
	}
}
