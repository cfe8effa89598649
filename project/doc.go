// SPDX-License-Identifier: EPL-2.0

// Package project persists editing sessions as YAML files.
package project
