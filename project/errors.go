// SPDX-License-Identifier: EPL-2.0

package project

import "errors"

var ErrVersionTooNew = errors.New("project file requires a newer build")
