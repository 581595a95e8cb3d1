// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package index

import "errors"

// ErrPoolExhausted is returned by a ByteBlockPool or IntBlockPool when
// it needs another buffer and Config.MaxBuffers has been reached. The caller should
// abort the current document; prior documents already harvested by a
// flush remain valid.
var ErrPoolExhausted = errors.New("index: pool exhausted")

// ErrNonMonotonicDoc is returned when a token arrives for a doc id that
// is not greater than the last doc id seen for the same term, violating
// the document-major ordering contract callers must uphold.
var ErrNonMonotonicDoc = errors.New("index: non-monotonic doc id")

// ErrNonMonotonicPosition is returned when a token arrives at a position
// that is less than the last position seen for the same (term, doc).
var ErrNonMonotonicPosition = errors.New("index: non-monotonic position")

// DebugAssertions controls whether ordering-contract violations panic
// (true, useful for catching caller bugs during development) or are
// returned as errors (false, the default production behavior).
var DebugAssertions = false

func orderingViolation(err error) error {
	if DebugAssertions {
		panic(err)
	}
	return err
}
