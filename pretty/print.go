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

package pretty

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"github.com/rivo/uniseg"

	"github.com/sable-analyzer/sable/ast"
	"github.com/sable-analyzer/sable/errors"
	"github.com/sable-analyzer/sable/format"
)

// ErrorPrefix is the prefix of the header line of an error report.
const ErrorPrefix = "error"

const excerptArrow = "--> "

const errorMarker = "^"
const noteMarker = "-"

func colorizeError(message string) string {
	return aurora.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeNote(message string) string {
	return aurora.Colorize(message, aurora.CyanFg|aurora.BoldFm).String()
}

func colorizeMessage(message string) string {
	return aurora.Bold(message).String()
}

func colorizeMeta(meta string) string {
	return aurora.Blue(meta).String()
}

// FormatErrorMessage formats the header line of an error report,
// e.g. `error: unexpected token`
func FormatErrorMessage(prefix string, message string, useColor bool) string {
	var builder strings.Builder

	if useColor {
		builder.WriteString(colorizeError(prefix))
		builder.WriteString(colorizeMessage(": "))
		builder.WriteString(colorizeMessage(message))
	} else {
		builder.WriteString(prefix)
		builder.WriteString(": ")
		builder.WriteString(message)
	}
	builder.WriteByte('\n')

	return builder.String()
}

// excerpt is one highlighted source range of an error report:
// the error's own range, or the range of one of its notes
type excerpt struct {
	startPos *ast.Position
	endPos   *ast.Position
	message  string
	isError  bool
}

func newExcerpt(obj any, message string, isError bool) excerpt {
	ex := excerpt{
		message: message,
		isError: isError,
	}
	if positioned, hasPosition := obj.(ast.HasPosition); hasPosition {
		startPos := positioned.StartPosition()
		ex.startPos = &startPos

		endPos := positioned.EndPosition()
		ex.endPos = &endPos
	}
	return ex
}

func sortExcerpts(excerpts []excerpt) {
	sort.SliceStable(excerpts, func(i, j int) bool {
		first := excerpts[i].startPos
		second := excerpts[j].startPos
		if first == nil {
			return false
		}
		if second == nil {
			return true
		}
		return first.Compare(*second) < 0
	})
}

// ErrorPrettyPrinter writes rustc-style error reports:
// a message line, followed by a source excerpt with the error range
// underlined, when the error has a position and the source is available.
type ErrorPrettyPrinter struct {
	writer   io.Writer
	useColor bool
}

func NewErrorPrettyPrinter(writer io.Writer, useColor bool) ErrorPrettyPrinter {
	return ErrorPrettyPrinter{
		writer:   writer,
		useColor: useColor,
	}
}

func (p ErrorPrettyPrinter) writeString(str string) error {
	_, err := io.WriteString(p.writer, str)
	return err
}

// PrettyPrintError writes the error to the printer's writer.
// An error with child errors is unwrapped,
// and each child is reported on its own, separated by blank lines.
func (p ErrorPrettyPrinter) PrettyPrintError(err error, input []byte) error {
	if parentError, ok := err.(errors.ParentError); ok {
		for i, childErr := range parentError.ChildErrors() {
			if i > 0 {
				err := p.writeString("\n")
				if err != nil {
					return err
				}
			}
			err := p.prettyPrintError(childErr, input)
			if err != nil {
				return err
			}
		}
		return nil
	}

	return p.prettyPrintError(err, input)
}

func (p ErrorPrettyPrinter) prettyPrintError(err error, input []byte) error {
	writeErr := p.writeString(FormatErrorMessage(ErrorPrefix, err.Error(), p.useColor))
	if writeErr != nil {
		return writeErr
	}

	var secondaryMessage string
	if secondaryError, ok := err.(errors.SecondaryError); ok {
		secondaryMessage = secondaryError.SecondaryError()
	}

	excerpts := []excerpt{
		newExcerpt(err, secondaryMessage, true),
	}

	if errorNotes, ok := err.(errors.ErrorNotes); ok {
		for _, errorNote := range errorNotes.ErrorNotes() {
			excerpts = append(
				excerpts,
				newExcerpt(errorNote, errorNote.Message(), false),
			)
		}
	}

	sortExcerpts(excerpts)

	return p.writeCodeExcerpts(excerpts, input)
}

func (p ErrorPrettyPrinter) writeCodeExcerpts(excerpts []excerpt, input []byte) error {

	lines := strings.Split(string(input), "\n")

	// The line numbers of all excerpts share one gutter,
	// wide enough for the largest of them

	var lineNumberWidth int
	for _, ex := range excerpts {
		if ex.startPos == nil {
			continue
		}
		width := len(strconv.Itoa(ex.startPos.Line))
		if width > lineNumberWidth {
			lineNumberWidth = width
		}
	}
	if lineNumberWidth == 0 {
		// No excerpt has a position, so there is nothing to point at
		return nil
	}

	wroteArrow := false

	for _, ex := range excerpts {
		if ex.startPos == nil {
			continue
		}

		if !wroteArrow {
			// ` --> <line>:<column>`
			err := p.writeExcerptArrow(*ex.startPos, lineNumberWidth)
			if err != nil {
				return err
			}
			wroteArrow = true
		}

		lineNumber := ex.startPos.Line
		if lineNumber < 1 || lineNumber > len(lines) {
			// The position is outside of the given input,
			// so only the arrow locates the error
			continue
		}
		line := lines[lineNumber-1]

		err := p.writeExcerptBlock(ex, line, lineNumberWidth)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p ErrorPrettyPrinter) writeExcerptArrow(position ast.Position, lineNumberWidth int) error {
	var builder strings.Builder

	arrow := excerptArrow
	if p.useColor {
		arrow = colorizeMeta(arrow)
	}
	builder.WriteString(strings.Repeat(" ", lineNumberWidth))
	builder.WriteString(arrow)
	builder.WriteString(strconv.Itoa(position.Line))
	builder.WriteByte(':')
	builder.WriteString(strconv.Itoa(position.Column))
	builder.WriteByte('\n')

	return p.writeString(builder.String())
}

func (p ErrorPrettyPrinter) writeExcerptBlock(ex excerpt, line string, lineNumberWidth int) error {
	var builder strings.Builder

	emptyGutter := strings.Repeat(" ", lineNumberWidth) + " |"
	lineNumberGutter := format.PadLeft(
		strconv.Itoa(ex.startPos.Line),
		' ',
		uint(lineNumberWidth),
	) + " |"
	if p.useColor {
		emptyGutter = colorizeMeta(emptyGutter)
		lineNumberGutter = colorizeMeta(lineNumberGutter)
	}

	// `  |`
	builder.WriteString(emptyGutter)
	builder.WriteByte('\n')

	// `1 | let x = 1`
	builder.WriteString(lineNumberGutter)
	builder.WriteByte(' ')
	builder.WriteString(line)
	builder.WriteByte('\n')

	// `  |     ^^^`
	builder.WriteString(emptyGutter)
	builder.WriteByte(' ')
	p.writeExcerptUnderline(&builder, ex, line)
	builder.WriteByte('\n')

	return p.writeString(builder.String())
}

// writeExcerptUnderline writes the spacing and the markers
// which point at the excerpt's range within the given line.
//
// Positions are byte-based, while the terminal renders graphemes,
// so both the spacing and the markers are counted in graphemes.
// Tabs in the spacing are kept, so that the markers line up
// with the code line regardless of the terminal's tab width.
func (p ErrorPrettyPrinter) writeExcerptUnderline(builder *strings.Builder, ex excerpt, line string) {

	startColumn := ex.startPos.Column
	endColumn := startColumn
	if ex.endPos != nil {
		if ex.endPos.Line == ex.startPos.Line {
			endColumn = ex.endPos.Column
		} else if ex.endPos.Line > ex.startPos.Line {
			// The range continues on a following line,
			// so underline to the end of this one
			endColumn = len(line) - 1
		}
	}
	if endColumn < startColumn {
		endColumn = startColumn
	}

	graphemes := uniseg.NewGraphemes(line)

	var byteOffset int
	for byteOffset < startColumn {
		if graphemes.Next() {
			bytes := graphemes.Bytes()
			byteOffset += len(bytes)
			if len(bytes) == 1 && bytes[0] == '\t' {
				builder.WriteByte('\t')
			} else {
				builder.WriteByte(' ')
			}
		} else {
			// The position is past the end of the line,
			// e.g. for an error at the end of the input
			builder.WriteByte(' ')
			byteOffset++
		}
	}

	var markerCount int
	for byteOffset <= endColumn && graphemes.Next() {
		markerCount++
		byteOffset += len(graphemes.Bytes())
	}
	if markerCount == 0 {
		markerCount = 1
	}

	marker := errorMarker
	colorizeMarkers := colorizeError
	if !ex.isError {
		marker = noteMarker
		colorizeMarkers = colorizeNote
	}

	markers := strings.Repeat(marker, markerCount)
	if ex.message != "" {
		markers += " " + ex.message
	}
	if p.useColor {
		markers = colorizeMarkers(markers)
	}
	builder.WriteString(markers)
}
