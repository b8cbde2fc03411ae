package process

import (
	"errors"
	"os"
	"os/exec"
	"sort"
	"sync"
)

var (
	ErrProcessNotFound = errors.New("process not running")
	ErrRegistryClosed  = errors.New("process registry closed after interrupt")
)

type Entry struct {
	PID     int
	Name    string
	Process *os.Process
}

// Registry tracks children that are currently running so an interrupt
// received by peat can be passed on to them.
type Registry struct {
	mu      sync.Mutex
	entries map[int]Entry
	closed  bool
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[int]Entry),
	}
}

// Start launches cmd and registers it in one step. Once InterruptAll has run
// nothing new is started and ErrRegistryClosed is returned.
func (r *Registry) Start(cmd *exec.Cmd, name string) error {
	if r == nil {
		return cmd.Start()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRegistryClosed
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	r.entries[cmd.Process.Pid] = Entry{
		PID:     cmd.Process.Pid,
		Name:    name,
		Process: cmd.Process,
	}
	return nil
}

func (r *Registry) Unregister(pid int) {
	if r == nil || pid <= 0 {
		return
	}
	r.mu.Lock()
	delete(r.entries, pid)
	r.mu.Unlock()
}

// Running returns the registered children ordered by pid.
func (r *Registry) Running() []Entry {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	entries := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	r.mu.Unlock()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PID < entries[j].PID
	})
	return entries
}

// InterruptAll closes the registry and delivers an interrupt to every
// registered child without waiting for any of them to exit.
func (r *Registry) InterruptAll() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	var interruptErr error
	for _, entry := range r.Running() {
		if err := interruptProcess(entry.Process); err != nil && !errors.Is(err, ErrProcessNotFound) {
			interruptErr = errors.Join(interruptErr, err)
		}
	}
	return interruptErr
}
