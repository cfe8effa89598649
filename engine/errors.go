// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrEmptyBuffer       = errors.New("cannot load an empty sample buffer")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)
