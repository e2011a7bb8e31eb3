//go:build gstreamer

package player

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-gst/go-gst/gst"
)

var gstInitOnce sync.Once

// GstDriver plays files through a GStreamer pipeline template. The template
// must contain a {path} placeholder and should end in an element exposing a
// volume property.
type GstDriver struct {
	mu       sync.Mutex
	template string
	device   string
	volume   int
	current  *gst.Element
}

// NewGstDriver creates a GStreamer-backed driver.
func NewGstDriver(template string, device string) (*GstDriver, error) {
	if strings.TrimSpace(template) == "" {
		template = "playbin uri=file://{path}"
	}
	gstInitOnce.Do(func() {
		gst.Init(nil)
	})
	return &GstDriver{template: template, device: device, volume: 100}, nil
}

func (d *GstDriver) Play(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	launch := strings.ReplaceAll(d.template, "{path}", path)
	launch = strings.ReplaceAll(launch, "{device}", d.device)
	pipeline, err := gst.ParseLaunch(launch)
	if err != nil {
		return err
	}
	if d.current != nil {
		_ = d.current.SetState(gst.StateNull)
	}
	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		return err
	}
	_ = pipeline.SetProperty("volume", float64(d.volume)/100)
	d.current = pipeline
	return nil
}

func (d *GstDriver) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return errors.New("not playing")
	}
	return d.current.SetState(gst.StatePaused)
}

func (d *GstDriver) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return errors.New("not playing")
	}
	return d.current.SetState(gst.StatePlaying)
}

func (d *GstDriver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return nil
	}
	_ = d.current.SetState(gst.StateNull)
	d.current = nil
	return nil
}

func (d *GstDriver) Seek(seconds int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return errors.New("not playing")
	}
	return d.current.SeekSimple(gst.FormatTime, gst.SeekFlagFlush|gst.SeekFlagKeyUnit,
		int64(seconds)*int64(time.Second))
}

func (d *GstDriver) SetVolume(level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volume = level
	if d.current != nil {
		if err := d.current.SetProperty("volume", float64(level)/100); err != nil {
			return fmt.Errorf("set volume: %w", err)
		}
	}
	return nil
}

func (d *GstDriver) Position() (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return 0, false
	}
	ok, pos := d.current.QueryPosition(gst.FormatTime)
	if !ok {
		return 0, false
	}
	return int(pos / 1e9), true
}
