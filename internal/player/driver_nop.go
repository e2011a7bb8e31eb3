package player

// NopDriver discards playback actions. It keeps the control plane fully
// usable on hosts without an audio backend.
type NopDriver struct{}

func (NopDriver) Play(string) error     { return nil }
func (NopDriver) Pause() error          { return nil }
func (NopDriver) Resume() error         { return nil }
func (NopDriver) Stop() error           { return nil }
func (NopDriver) Seek(int) error        { return nil }
func (NopDriver) SetVolume(int) error   { return nil }
func (NopDriver) Position() (int, bool) { return 0, false }
