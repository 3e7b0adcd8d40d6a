// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpose

import (
	"errors"
	"fmt"
)

// ErrScaffoldNotFound is returned by Remap when the scaffold of a
// record has no placement on the new assembly. It is not fatal to a run.
var ErrScaffoldNotFound = errors.New("transpose: scaffold not found")

// MalformedAnnotationError is returned when a scaffold annotation
// row cannot be used to place a scaffold.
type MalformedAnnotationError struct {
	Line   int
	Reason string
}

func (e *MalformedAnnotationError) Error() string {
	return fmt.Sprintf("transpose: malformed annotation at line %d: %s", e.Line, e.Reason)
}

// RowError is returned when a feature or overlap row cannot be parsed.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("transpose: bad row at line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
