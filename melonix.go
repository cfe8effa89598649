// SPDX-License-Identifier: EPL-2.0

package melonix

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/karlingen/melonix/audio"
	"github.com/karlingen/melonix/engine"
	"github.com/karlingen/melonix/formats/aiff"
	"github.com/karlingen/melonix/formats/mp3"
	"github.com/karlingen/melonix/formats/vorbis"
	"github.com/karlingen/melonix/formats/wav"
	"github.com/karlingen/melonix/project"
	"github.com/karlingen/melonix/utils"
)

// collectBufferSize is the read chunk used when draining decoders on load.
const collectBufferSize = 4096

// DefaultRegistry returns a registry with every built-in decoder registered
// under its usual file extension.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// DecodeFile decodes the audio file at path into mono float32 samples at the
// file's native sample rate. The decoder is picked by file extension.
func DecodeFile(path string) ([]float32, int, error) {
	return decodeFile(path, 0)
}

// DecodeFileAtRate decodes like DecodeFile but resamples to targetRate with
// cubic interpolation before folding to mono.
func DecodeFileAtRate(path string, targetRate int) ([]float32, int, error) {
	if targetRate <= 0 {
		return nil, 0, audio.ErrInvalidTargetRate
	}
	return decodeFile(path, targetRate)
}

func decodeFile(path string, targetRate int) ([]float32, int, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	dec, ok := DefaultRegistry().Get(ext)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	if targetRate > 0 {
		return audio.CollectMonoAtRate(src, targetRate, collectBufferSize)
	}
	return audio.CollectMono(src, collectBufferSize)
}

// ExportWAV16 writes mono float32 samples to w as a 16-bit PCM WAV file.
func ExportWAV16(w io.Writer, sampleRate int, samples []float32) error {
	pcm := make([]int16, len(samples))
	for i, v := range samples {
		pcm[i] = utils.Float32ToInt16(v)
	}
	return wav.WriteWAV16(w, sampleRate, pcm)
}

// OpenProject loads the project file at path, decodes its source audio and
// returns an engine with the buffer and marker arrangement installed. A
// relative SourcePath is resolved against the project file's directory.
func OpenProject(path string) (*engine.Engine, *project.Project, error) {
	p, err := project.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	src := p.SourcePath
	if !filepath.IsAbs(src) {
		src = filepath.Join(filepath.Dir(path), src)
	}

	data, rate, err := DecodeFile(src)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New()
	if err := eng.LoadWithMarkers(data, rate, p.Markers); err != nil {
		return nil, nil, err
	}
	return eng, p, nil
}

// SaveProject writes the engine's current marker arrangement to a project
// file at path, referencing sourcePath as the audio to reopen with.
func SaveProject(path, sourcePath string, eng *engine.Engine) error {
	return project.SaveFile(path, &project.Project{
		Version:    project.Version,
		SourcePath: sourcePath,
		Markers:    eng.Markers(),
	})
}
