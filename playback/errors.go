// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var ErrInvalidPlaybackRate = errors.New("playback sample rate must be positive")
