//go:build cgo

package audioout

import (
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Device plays one stream on the default output.
type Device struct {
	ctx    *oto.Context
	player *oto.Player
}

// Open starts playing r, which must produce interleaved float32LE stereo at
// sampleRate. A zero bufferSize selects DefaultBufferSize.
func Open(sampleRate int, r io.Reader, bufferSize time.Duration) (*Device, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("audioout: cannot create oto context: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(r)
	player.Play()
	return &Device{ctx: ctx, player: player}, nil
}

// Err reports a playback error, if any.
func (d *Device) Err() error {
	return d.player.Err()
}

// Close stops playback.
func (d *Device) Close() error {
	if err := d.player.Close(); err != nil {
		return fmt.Errorf("audioout: cannot close oto player: %w", err)
	}
	return nil
}
