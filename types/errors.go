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

package types

import (
	"fmt"
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/sable-analyzer/sable/errors"
)

// TypeError is an error produced by the type engine.
type TypeError interface {
	error
	isTypeError()
}

// MalformedTypeError

// MalformedTypeError is reported for inputs no type can be built from:
// an empty type string, an empty name, or a name containing `|`.
type MalformedTypeError struct {
	Input  string
	Detail string
}

var _ TypeError = &MalformedTypeError{}
var _ errors.UserError = &MalformedTypeError{}

func (*MalformedTypeError) isTypeError() {}

func (*MalformedTypeError) IsUserError() {}

func (e *MalformedTypeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("malformed type: `%s`", e.Input)
	}
	return fmt.Sprintf("malformed type: `%s`: %s", e.Input, e.Detail)
}

// UnresolvedReferenceError

// UnresolvedReferenceError is reported when a class-scope name needs
// a class the symbol store does not have,
// e.g. `parent` in a class the store knows no parent for.
type UnresolvedReferenceError struct {
	Name string
	// Options are the class names the store does have,
	// used to suggest a close spelling
	Options []string
}

var _ TypeError = &UnresolvedReferenceError{}
var _ errors.UserError = &UnresolvedReferenceError{}
var _ errors.SecondaryError = &UnresolvedReferenceError{}

// NewUnresolvedReferenceError constructs the error with suggestion options
// taken from the given store, if it can enumerate its class names.
func NewUnresolvedReferenceError(name string, store SymbolStore) *UnresolvedReferenceError {
	return &UnresolvedReferenceError{
		Name:    name,
		Options: classNameOptions(store),
	}
}

func (*UnresolvedReferenceError) isTypeError() {}

func (*UnresolvedReferenceError) IsUserError() {}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("reference to undeclared class `%s`", e.Name)
}

func (e *UnresolvedReferenceError) SecondaryError() string {
	if closestName := e.findClosestName(); closestName != "" {
		return fmt.Sprintf("did you mean `%s`?", closestName)
	}
	return "unknown class"
}

// findClosestName searches the class names the store declares,
// and finds the name with the smallest edit distance from the name the user
// referred to. In cases of typos, this should provide a helpful hint.
func (e *UnresolvedReferenceError) findClosestName() (closestName string) {
	nameRunes := []rune(e.Name)

	closestDistance := len(e.Name)

	sortedNames := make([]string, len(e.Options))
	copy(sortedNames, e.Options)
	sort.Strings(sortedNames)

	for _, option := range sortedNames {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(option),
			levenshtein.DefaultOptions,
		)

		// Don't update the closest name if the distance is greater than one already found,
		// or if the edits required would involve a complete replacement of the name's text
		if distance < closestDistance && distance < len(option) {
			closestName = option
			closestDistance = distance
		}
	}

	return
}

// RecursionLimitError

// RecursionLimitError is reported when hierarchy expansion exceeds
// the recursion depth limit. It aborts the whole expansion:
// no partial result is returned.
type RecursionLimitError struct {
	TypeName string
	Depth    int
}

var _ TypeError = &RecursionLimitError{}
var _ errors.UserError = &RecursionLimitError{}
var _ errors.SecondaryError = &RecursionLimitError{}

func (*RecursionLimitError) isTypeError() {}

func (*RecursionLimitError) IsUserError() {}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf(
		"recursion limit of %d reached while expanding `%s`",
		e.Depth,
		e.TypeName,
	)
}

func (e *RecursionLimitError) SecondaryError() string {
	return "the class hierarchy or template arguments probably form a cycle"
}
