/*
 * Sable - A static analyzer for PHP
 *
 * Copyright Sable Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ast

import (
	"fmt"
)

// Position defines a byte offset along with the line and column number
// into an annotation string.
type Position struct {
	// offset, starting at 0
	Offset int
	// line number, starting at 1
	Line int
	// column number, starting at 0 (byte count)
	Column int
}

func (position Position) String() string {
	return fmt.Sprintf("%d(%d:%d)", position.Offset, position.Line, position.Column)
}

// Shifted returns a new position, the given length further along the same line.
func (position Position) Shifted(length int) Position {
	return Position{
		Offset: position.Offset + length,
		Line:   position.Line,
		Column: position.Column + length,
	}
}

func (position Position) Compare(other Position) int {
	switch {
	case position.Offset < other.Offset:
		return -1
	case position.Offset > other.Offset:
		return 1
	default:
		return 0
	}
}

// HasPosition is implemented by all elements that span a source range.
type HasPosition interface {
	StartPosition() Position
	EndPosition() Position
}

// Range is a source range of an element.
// EndPos is the position of the element's last byte, i.e. inclusive.
type Range struct {
	StartPos Position
	EndPos   Position
}

var EmptyRange = Range{}

func (e Range) StartPosition() Position {
	return e.StartPos
}

func (e Range) EndPosition() Position {
	return e.EndPos
}

// Source returns the bytes the range covers in the given input.
func (e Range) Source(input []byte) []byte {
	startOffset := e.StartPos.Offset
	endOffset := e.EndPos.Offset + 1
	if startOffset > len(input) {
		startOffset = len(input)
	}
	if endOffset > len(input) {
		endOffset = len(input)
	}
	return input[startOffset:endOffset]
}

func NewRangeFromPositioned(hasPosition HasPosition) Range {
	return Range{
		StartPos: hasPosition.StartPosition(),
		EndPos:   hasPosition.EndPosition(),
	}
}
