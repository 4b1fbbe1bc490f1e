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

// SymbolStore is the engine's view of the discovered class-like symbols.
// All names are fully qualified, e.g. `\Foo\Bar`, and looked up
// case-insensitively.
type SymbolStore interface {
	// HasClass reports whether a class-like symbol with the given
	// fully qualified name is declared.
	HasClass(name string) bool
	// ClassUnion returns the union the class declares:
	// its parent class and implemented interfaces, as class references,
	// possibly carrying template placeholders.
	ClassUnion(name string) (UnionType, bool)
	// ClassAdditionalUnion returns the additional types attached to
	// the class by alias or union declarations.
	ClassAdditionalUnion(name string) (UnionType, bool)
	// ClassTemplateParams returns the class's declared
	// generic-parameter names, in declaration order.
	ClassTemplateParams(name string) []string
	// ClassAliases returns the other fully qualified names
	// the class is declared under.
	ClassAliases(name string) []string
	// Ancestor returns the fully qualified name of the class's
	// direct parent class, if it has one.
	Ancestor(name string) (string, bool)
}

// ClassNamer is an optional extension of SymbolStore.
// Stores that can enumerate their class names allow
// close-spelling suggestions on unresolved references.
type ClassNamer interface {
	// ClassNames returns the fully qualified names of all
	// declared class-like symbols.
	ClassNames() []string
}

func classNameOptions(store SymbolStore) []string {
	namer, ok := store.(ClassNamer)
	if !ok {
		return nil
	}
	return namer.ClassNames()
}
