// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"fmt"

	"github.com/ebitengine/oto/v3"

	"github.com/karlingen/melonix/utils"
)

// Puller produces mono float32 samples on demand. It must always fill the
// whole slice, writing silence when there is nothing to play.
type Puller interface {
	Pull(dst []float32)
}

// PCMReader adapts a Puller to the io.Reader the audio device consumes:
// signed 16-bit little-endian mono frames.
type PCMReader struct {
	src Puller
	buf []float32
}

func NewPCMReader(src Puller) *PCMReader {
	return &PCMReader{src: src}
}

// Read pulls whole frames into p. It never returns an error; the stream ends
// only when the reader is abandoned.
func (r *PCMReader) Read(p []byte) (int, error) {
	n := len(p) / 2
	if n == 0 {
		return 0, nil
	}

	if cap(r.buf) < n {
		r.buf = make([]float32, n)
	}
	r.buf = r.buf[:n]
	r.src.Pull(r.buf)

	for i, v := range r.buf {
		binary.LittleEndian.PutUint16(p[2*i:], uint16(utils.Float32ToInt16(v)))
	}
	return n * 2, nil
}

// Player owns the audio device and streams a Puller to it. The device
// context is process-global; create at most one Player per process.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer opens the audio device at the given sample rate and binds it to
// src. The call blocks until the device is ready.
func NewPlayer(src Puller, sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidPlaybackRate
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(NewPCMReader(src)),
	}, nil
}

// Start begins streaming. The Puller's own transport decides whether the
// stream carries audio or silence, so Start is typically called once.
func (p *Player) Start() {
	p.player.Play()
}

// Suspend pauses the device without tearing it down.
func (p *Player) Suspend() error {
	return p.ctx.Suspend()
}

// Resume restarts a suspended device.
func (p *Player) Resume() error {
	return p.ctx.Resume()
}

// Close stops streaming and releases the device player.
func (p *Player) Close() error {
	return p.player.Close()
}
