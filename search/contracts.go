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

// Package search implements disjunction scoring over a set of child
// document iterators: a min-heap keyed on doc id, a sum scorer and a
// maximum-with-tiebreak scorer.
package search

// NoMoreDocs is the sentinel doc id an iterator returns once exhausted.
const NoMoreDocs = int32(1<<31 - 1)

// DocIterator advances over an ascending stream of doc ids.
type DocIterator interface {
	// DocID returns the iterator's current doc id: -1 if it has not been
	// positioned yet, NoMoreDocs after exhaustion. The disjunction
	// scorers in this package are positioned on their first doc when
	// constructed.
	DocID() int32
	// Next advances to the next doc id, returning it (or NoMoreDocs).
	Next() int32
	// Advance moves forward to the first doc id >= target, returning it
	// (or NoMoreDocs). target must be greater than DocID().
	Advance(target int32) int32
	// Cost is an estimate of the number of documents remaining, used by
	// callers that want to order iterators cheapest-first.
	Cost() int64
}

// Scorer produces a relevance score for the current document of an
// underlying DocIterator.
type Scorer interface {
	DocIterator
	// Score returns the score of the current document. It is only
	// valid to call while DocID() != NoMoreDocs.
	Score() float64
}

// Matches always reports true and MatchCost always reports 0 for every
// scorer in this package: disjunction scoring never filters documents
// its children did not already agree to emit, so there is nothing left
// to verify and no extra cost to charge for it.
func Matches(Scorer) bool    { return true }
func MatchCost(Scorer) int64 { return 0 }
