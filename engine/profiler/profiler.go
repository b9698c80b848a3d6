//go:build profile

// Package profiler records nested timing scopes into a fixed-size ring and
// dumps them as a speedscope evented profile.
package profiler

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const FileName = "atlas.profile.speedscope.json"

const Enabled = true

var ErrNoEvents = errors.New("profiler: no events recorded")

// Init allocates the ring. capacity is the number of open/close events kept.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	ring.init(capacity)
}

// Start opens a scope. Call the returned func to close it.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := names.intern(name)
	begin := time.Now().UnixNano()
	ring.push(event{at: begin, name: id, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < begin {
			end = begin
		}
		ring.push(event{at: end, name: id})
	}
}

// Dump writes the recorded events to FileName in dir and returns its path.
func Dump(dir string) (string, error) {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return "", ErrNoEvents
	}
	path := filepath.Join(dir, FileName)
	if err := writeSpeedscope(path, evs, names.snapshot()); err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}
	return path, nil
}

// Open launches the speedscope viewer on path without waiting for it.
func Open(path string) error {
	cmd := exec.Command("speedscope", path)
	hideConsole(cmd)
	return cmd.Start()
}

type event struct {
	at   int64 // unix ns
	name int
	open bool
}

type eventRing struct {
	ready atomic.Bool
	size  uint64
	next  atomic.Uint64
	buf   []event
}

var ring eventRing

func (r *eventRing) init(capacity int) {
	r.size = uint64(capacity)
	r.buf = make([]event, r.size)
	r.next.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.next.Add(1) - 1
	r.buf[i%r.size] = e
}

// snapshot returns the retained events in write order.
func (r *eventRing) snapshot() []event {
	n := r.next.Load()
	if n == 0 {
		return nil
	}
	var first uint64
	if n > r.size {
		first = n - r.size
	}
	out := make([]event, 0, n-first)
	for k := first; k < n; k++ {
		out = append(out, r.buf[k%r.size])
	}
	return out
}

type nameTable struct {
	mu    sync.Mutex
	list  []string
	index map[string]int
}

var names = nameTable{index: map[string]int{}}

func (t *nameTable) intern(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.index[name]; ok {
		return id
	}
	id := len(t.list)
	t.index[name] = id
	t.list = append(t.list, name)
	return id
}

func (t *nameTable) snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.list...)
}
