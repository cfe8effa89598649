// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// CollectMono drains src through a MonoMixer and returns the whole stream as
// mono float32 samples together with the stream's sample rate.
//
// This is what the engine consumes on load: one immutable mono buffer at a
// fixed rate.
func CollectMono(src Source, bufferSize int) ([]float32, int, error) {
	return collect(NewMonoMixer(src), bufferSize)
}

// CollectMonoAtRate resamples src to targetRate (cubic interpolation) before
// folding it down to mono and collecting it.
func CollectMonoAtRate(src Source, targetRate, bufferSize int) ([]float32, int, error) {
	if targetRate <= 0 {
		return nil, 0, ErrInvalidTargetRate
	}
	return collect(NewMonoMixer(NewResampler(src, targetRate)), bufferSize)
}

func collect(src Source, bufferSize int) ([]float32, int, error) {
	rate := src.SampleRate()
	samples := make([]float32, 0, rate) // room for ~1s before the first grow
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rate, fmt.Errorf("%w", err)
		}
	}

	return samples, rate, nil
}
