// Copyright ©2026 The SouthGreen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpose

import (
	"net/url"
	"strings"
)

// Attributes holds the tag/value pairs of a GFF attributes column.
type Attributes map[string]string

// ParseAttributes parses a GFF attributes column. Both the GFF3
// (tag=value;tag=value) and GFF2 (tag "value"; tag value) forms
// are accepted. GFF3 values are percent-decoded; values that are not
// valid percent-encoded text are kept verbatim. Where a tag is
// repeated, the first value is kept.
func ParseAttributes(s string) Attributes {
	a := make(Attributes)
	if s == "." {
		return a
	}
	for _, tv := range strings.Split(s, ";") {
		tv = strings.TrimSpace(tv)
		if tv == "" {
			continue
		}
		var tag, val string
		if i := strings.IndexAny(tv, "= \t"); i < 0 {
			tag = tv
		} else {
			tag = tv[:i]
			val = strings.TrimSpace(tv[i+1:])
			if tv[i] == '=' {
				if v, err := url.PathUnescape(val); err == nil {
					val = v
				}
			} else {
				val = strings.Trim(val, `"`)
			}
		}
		if _, ok := a[tag]; ok {
			continue
		}
		a[tag] = val
	}
	return a
}

// Get returns the value for tag and whether tag is present.
func (a Attributes) Get(tag string) (string, bool) {
	v, ok := a[tag]
	return v, ok
}
