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

package analysis

import (
	"io"
	"log/slog"
	"time"

	"github.com/sable-analyzer/sable/parser"
	"github.com/sable-analyzer/sable/types"
)

// Config configures an Engine. The zero value is usable:
// the strict default cast policy, no logging, no tracing.
type Config struct {
	// Policy is the cast policy every cast check of the engine uses
	Policy types.CastPolicy
	// Logger receives debug-level engine events.
	// A nil logger discards them
	Logger *slog.Logger
	Tracer Tracer
}

// Engine ties the type engine's parts together for one analysis run:
// one registry, one symbol store, one annotation parser, one expander,
// and one cast policy.
//
// The engine is sequential. Independent analysis workers each hold
// their own engine; nothing here is shared between processes.
type Engine struct {
	registry *types.Registry
	symbols  *Symbols
	parser   *parser.TypeParser
	expander *types.Expander
	policy   types.CastPolicy
	logger   *slog.Logger
	tracer   Tracer

	discovered bool
}

func NewEngine(config *Config) *Engine {
	if config == nil {
		config = &Config{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	registry := types.NewRegistry()
	symbols := NewSymbols(registry)

	return &Engine{
		registry: registry,
		symbols:  symbols,
		parser:   parser.NewTypeParser(registry, symbols),
		expander: types.NewExpander(registry, symbols),
		policy:   config.Policy,
		logger:   logger,
		tracer:   config.Tracer,
	}
}

func (e *Engine) Registry() *types.Registry {
	return e.registry
}

func (e *Engine) Symbols() *Symbols {
	return e.symbols
}

func (e *Engine) Policy() types.CastPolicy {
	return e.policy
}

// AddClass declares a class-like symbol.
// A declaration arriving after FinishDiscovery changes ancestry
// under the caches, so they are invalidated immediately.
func (e *Engine) AddClass(decl ClassDecl) error {
	err := e.symbols.AddClass(decl)
	if err != nil {
		return err
	}
	if e.discovered {
		e.invalidate()
	}
	return nil
}

// FinishDiscovery marks the end of the discovery phase.
// Parses and expansions cached while the store was still being
// populated may be stale, so both caches are invalidated.
func (e *Engine) FinishDiscovery() {
	e.discovered = true
	e.invalidate()
}

func (e *Engine) invalidate() {
	e.parser.InvalidateCache()
	e.expander.Invalidate()
	e.logger.Debug(
		"invalidated type caches",
		slog.Int("classes", e.symbols.Len()),
	)
}

// ParseUnion parses a type annotation in the given scope.
// A nil scope is the empty context.
func (e *Engine) ParseUnion(
	input string,
	scope types.Context,
	provenance types.Provenance,
) (types.UnionType, error) {
	if e.tracer.TracingEnabled {
		startTime := time.Now()
		defer func() {
			e.tracer.reportParseUnionTrace(
				e,
				provenance,
				len(input),
				time.Since(startTime),
			)
		}()
	}

	union, err := e.parser.ParseUnion(input, scope, provenance)
	if err != nil {
		return types.UnionType{}, err
	}

	e.logShadowedNativeNames(union)

	return union, nil
}

// logShadowedNativeNames reports class references whose base name
// spells a native type outside the root namespace, e.g. `\Foo\Closure`.
// They are legal, so they only surface at debug level, for the
// diagnostics collaborator.
func (e *Engine) logShadowedNativeNames(union types.UnionType) {
	for _, member := range union.Members() {
		if member.Kind() != types.KindClass {
			continue
		}
		if member.Namespace() == "\\" {
			continue
		}
		if _, ok := types.NativeKindForName(member.Name()); !ok {
			continue
		}
		e.logger.Debug(
			"class reference shadows a native type name",
			slog.String("class", member.FQSEN()),
		)
	}
}

// Expand returns the union of the type with all its ancestors,
// interfaces, and aliases.
func (e *Engine) Expand(t *types.Type) (union types.UnionType, err error) {
	if e.tracer.TracingEnabled {
		startTime := time.Now()
		defer func() {
			e.tracer.reportExpandTypeTrace(
				e,
				t.String(),
				union.Len(),
				time.Since(startTime),
			)
		}()
	}

	return e.expander.Expand(t)
}

// ExpandUnion expands every member of the union.
func (e *Engine) ExpandUnion(u types.UnionType) (union types.UnionType, err error) {
	if e.tracer.TracingEnabled {
		startTime := time.Now()
		defer func() {
			e.tracer.reportExpandUnionTrace(
				e,
				u.String(),
				union.Len(),
				time.Since(startTime),
			)
		}()
	}

	return e.expander.ExpandUnion(u)
}

// ExpandStrict expands like Expand, but a class reference the store
// does not declare is an error instead of expanding to itself.
func (e *Engine) ExpandStrict(t *types.Type) (union types.UnionType, err error) {
	if e.tracer.TracingEnabled {
		startTime := time.Now()
		defer func() {
			e.tracer.reportExpandStrictTrace(
				e,
				t.String(),
				union.Len(),
				time.Since(startTime),
			)
		}()
	}

	union, err = e.expander.ExpandStrict(t)
	if err != nil {
		e.logger.Debug(
			"strict expansion failed",
			slog.String("type", t.String()),
			slog.Any("error", err),
		)
		return types.UnionType{}, err
	}
	return union, nil
}

// CanCast reports whether a value of the source union can be used where
// the target union is expected, with subtyping through the class
// hierarchy: each source member is usable when any of its expanded
// forms casts into the target. The target is not expanded, which would
// wrongly admit downcasts.
func (e *Engine) CanCast(source, target types.UnionType) (result bool, err error) {
	if e.tracer.TracingEnabled {
		startTime := time.Now()
		defer func() {
			e.tracer.reportCastCheckTrace(
				e,
				source.String(),
				target.String(),
				result,
				time.Since(startTime),
			)
		}()
	}

	if source.IsEmpty() || target.IsEmpty() {
		return true, nil
	}

	for _, member := range source.Members() {
		expanded, expandErr := e.expander.Expand(member)
		if expandErr != nil {
			return false, expandErr
		}

		memberFits := false
		for _, form := range expanded.Members() {
			if form.CanCastToAnyOf(target, e.policy) {
				memberFits = true
				break
			}
		}
		if !memberFits {
			e.logger.Debug(
				"cast check failed",
				slog.Any("source", lazyUnion{types.NewUnion(member)}),
				slog.Any("target", lazyUnion{target}),
			)
			return false, nil
		}
	}

	return true, nil
}

// lazyUnion defers rendering a union until the log record is actually
// emitted.
type lazyUnion struct {
	union types.UnionType
}

var _ slog.LogValuer = lazyUnion{}

func (l lazyUnion) LogValue() slog.Value {
	return slog.StringValue(l.union.String())
}
