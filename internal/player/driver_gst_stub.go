//go:build !gstreamer

package player

import "errors"

// GstDriver is unavailable without the gstreamer build tag.
type GstDriver struct{}

// NewGstDriver fails when the gstreamer build tag is missing.
func NewGstDriver(template string, device string) (*GstDriver, error) {
	return nil, errors.New("gstreamer build tag not enabled")
}

func (d *GstDriver) Play(string) error     { return errors.New("gstreamer build tag not enabled") }
func (d *GstDriver) Pause() error          { return errors.New("gstreamer build tag not enabled") }
func (d *GstDriver) Resume() error         { return errors.New("gstreamer build tag not enabled") }
func (d *GstDriver) Stop() error           { return errors.New("gstreamer build tag not enabled") }
func (d *GstDriver) Seek(int) error        { return errors.New("gstreamer build tag not enabled") }
func (d *GstDriver) SetVolume(int) error   { return errors.New("gstreamer build tag not enabled") }
func (d *GstDriver) Position() (int, bool) { return 0, false }
