package player

import (
	"sync"

	"go.uber.org/zap"

	"github.com/gramofon/gramofon/internal/library"
)

// State is the playback state reported on the wire.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// Driver executes playback actions against an audio backend.
type Driver interface {
	Play(path string) error
	Pause() error
	Resume() error
	Stop() error
	Seek(seconds int) error
	SetVolume(level int) error
	Position() (seconds int, ok bool)
}

// Status is a snapshot of the controller.
type Status struct {
	Current  *library.File
	State    State
	Position int
	Volume   int
	Index    []int
}

// Controller owns the live playback queue and player state. All methods are
// safe for concurrent use.
type Controller struct {
	log    *zap.Logger
	driver Driver

	mu       sync.Mutex
	queue    []QueueItem
	current  []int
	state    State
	position int
	volume   int
}

// NewController creates a stopped controller at full volume.
func NewController(log *zap.Logger, driver Driver) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if driver == nil {
		driver = NopDriver{}
	}
	return &Controller{log: log, driver: driver, volume: 100}
}

// Queue appends one item tree to the queue.
func (c *Controller) Queue(item QueueItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, item)
}

// Items returns the top-level queue entries. The trees are immutable; the
// slice is a private copy for the caller.
func (c *Controller) Items() []QueueItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]QueueItem, len(c.queue))
	copy(items, c.queue)
	return items
}

// Remove drops the node addressed by the index path. Removing the item that
// is currently playing stops playback.
func (c *Controller) Remove(path []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := itemAt(c.queue, path); err != nil {
		return err
	}
	queue, err := removeAt(c.queue, path)
	if err != nil {
		return err
	}
	c.queue = queue

	if c.current != nil && pathCovered(path, c.current) {
		c.stopLocked()
	} else if c.current != nil {
		// Reattach to the same file; its path may have shifted left.
		c.current = adjustPath(c.current, path)
	}
	return nil
}

// RemoveAll clears the queue. Calling it on an empty queue is a no-op.
func (c *Controller) RemoveAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = nil
	c.stopLocked()
}

// GoTo jumps to the file addressed by the index path and starts playing it.
func (c *Controller) GoTo(path []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, err := itemAt(c.queue, path)
	if err != nil {
		return err
	}
	if item.Type() != TypeFile {
		return ErrBadIndex
	}
	c.current = append([]int{}, path...)
	c.position = 0
	return c.playCurrentLocked()
}

// Status reports a snapshot of playback state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seconds, ok := c.driver.Position(); ok && c.state == Playing {
		c.position = seconds
	}
	status := Status{State: c.state, Position: c.position, Volume: c.volume, Index: []int{}}
	if c.current != nil {
		status.Index = append([]int{}, c.current...)
		if item, err := itemAt(c.queue, c.current); err == nil {
			if file, ok := item.(FileItem); ok {
				f := file.File
				status.Current = &f
			}
		}
	}
	return status
}

// Play starts or resumes playback.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Playing:
		return
	case Paused:
		if err := c.driver.Resume(); err != nil {
			c.log.Warn("driver resume failed", zap.Error(err))
		}
		c.state = Playing
		return
	}

	if c.current == nil {
		paths := filePaths(c.queue)
		if len(paths) == 0 {
			return
		}
		c.current = paths[0]
		c.position = 0
	}
	if err := c.playCurrentLocked(); err != nil {
		c.log.Warn("play failed", zap.Error(err))
	}
}

// Pause pauses playback when playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Playing {
		return
	}
	if err := c.driver.Pause(); err != nil {
		c.log.Warn("driver pause failed", zap.Error(err))
	}
	c.state = Paused
}

// Stop stops playback and resets the position.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Seek moves within the current file.
func (c *Controller) Seek(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || seconds < 0 {
		return
	}
	if err := c.driver.Seek(seconds); err != nil {
		c.log.Warn("driver seek failed", zap.Error(err))
	}
	c.position = seconds
}

// Next advances to the following file in playback order. At the end of the
// queue playback stops.
func (c *Controller) Next() {
	c.step(+1)
}

// Prev steps back to the previous file, staying on the first one.
func (c *Controller) Prev() {
	c.step(-1)
}

func (c *Controller) step(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	paths := filePaths(c.queue)
	if len(paths) == 0 || c.current == nil {
		return
	}
	at := -1
	for i, path := range paths {
		if samePath(path, c.current) {
			at = i
			break
		}
	}
	if at < 0 {
		c.stopLocked()
		return
	}
	next := at + delta
	if next < 0 {
		next = 0
	}
	if next >= len(paths) {
		c.stopLocked()
		return
	}
	c.current = paths[next]
	c.position = 0
	if c.state != Stopped {
		if err := c.playCurrentLocked(); err != nil {
			c.log.Warn("play failed", zap.Error(err))
		}
	}
}

// Volume returns the current volume level.
func (c *Controller) Volume() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// SetVolume sets the volume, clamped to 0-100.
func (c *Controller) SetVolume(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVolumeLocked(level)
}

// IncVolume raises the volume by one step.
func (c *Controller) IncVolume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVolumeLocked(c.volume + 1)
}

// DecVolume lowers the volume by one step.
func (c *Controller) DecVolume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVolumeLocked(c.volume - 1)
}

func (c *Controller) setVolumeLocked(level int) {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	c.volume = level
	if err := c.driver.SetVolume(level); err != nil {
		c.log.Warn("driver volume failed", zap.Error(err))
	}
}

func (c *Controller) playCurrentLocked() error {
	item, err := itemAt(c.queue, c.current)
	if err != nil {
		return err
	}
	file, ok := item.(FileItem)
	if !ok {
		return ErrBadIndex
	}
	if err := c.driver.Play(file.File.Path); err != nil {
		return err
	}
	c.state = Playing
	return nil
}

func (c *Controller) stopLocked() {
	if err := c.driver.Stop(); err != nil {
		c.log.Warn("driver stop failed", zap.Error(err))
	}
	c.state = Stopped
	c.current = nil
	c.position = 0
}

// pathCovered reports whether target equals prefix or lives underneath it.
func pathCovered(prefix, target []int) bool {
	if len(prefix) > len(target) {
		return false
	}
	for i := range prefix {
		if prefix[i] != target[i] {
			return false
		}
	}
	return true
}

// adjustPath shifts the current path left when a preceding sibling at the
// same depth was removed.
func adjustPath(current, removed []int) []int {
	depth := len(removed) - 1
	if depth >= len(current) {
		return current
	}
	for i := 0; i < depth; i++ {
		if current[i] != removed[i] {
			return current
		}
	}
	if current[depth] > removed[depth] {
		out := append([]int{}, current...)
		out[depth]--
		return out
	}
	return current
}
