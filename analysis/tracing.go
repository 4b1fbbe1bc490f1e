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
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/sable-analyzer/sable/types"
)

const (
	// operation prefixes
	tracingParsePrefix  = "parse."
	tracingExpandPrefix = "expand."
	tracingCastPrefix   = "cast."

	// operation postfixes
	tracingUnionPostfix  = "union"
	tracingTypePostfix   = "type"
	tracingStrictPostfix = "strict"
	tracingCheckPostfix  = "check"
)

// OnRecordTraceFunc is a function that records a trace.
type OnRecordTraceFunc func(
	engine *Engine,
	operationName string,
	duration time.Duration,
	attrs []attribute.KeyValue,
)

type Tracer struct {
	// OnRecordTrace is triggered when a trace is recorded
	OnRecordTrace OnRecordTraceFunc
	// TracingEnabled determines if tracing is enabled.
	// Tracing reports the engine's parse, expansion,
	// and cast-check operations
	TracingEnabled bool
}

func (tracer Tracer) reportParseUnionTrace(
	engine *Engine,
	provenance types.Provenance,
	inputLength int,
	duration time.Duration,
) {
	tracer.OnRecordTrace(engine,
		tracingParsePrefix+tracingUnionPostfix,
		duration,
		[]attribute.KeyValue{
			attribute.String("provenance", provenance.String()),
			attribute.Int("inputLength", inputLength),
		},
	)
}

func prepareExpandTraceAttrs(typeName string, memberCount int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("type", typeName),
		attribute.Int("members", memberCount),
	}
}

func (tracer Tracer) reportExpandTypeTrace(
	engine *Engine,
	typeName string,
	memberCount int,
	duration time.Duration,
) {
	tracer.OnRecordTrace(engine,
		tracingExpandPrefix+tracingTypePostfix,
		duration,
		prepareExpandTraceAttrs(typeName, memberCount),
	)
}

func (tracer Tracer) reportExpandUnionTrace(
	engine *Engine,
	typeName string,
	memberCount int,
	duration time.Duration,
) {
	tracer.OnRecordTrace(engine,
		tracingExpandPrefix+tracingUnionPostfix,
		duration,
		prepareExpandTraceAttrs(typeName, memberCount),
	)
}

func (tracer Tracer) reportExpandStrictTrace(
	engine *Engine,
	typeName string,
	memberCount int,
	duration time.Duration,
) {
	tracer.OnRecordTrace(engine,
		tracingExpandPrefix+tracingStrictPostfix,
		duration,
		prepareExpandTraceAttrs(typeName, memberCount),
	)
}

func (tracer Tracer) reportCastCheckTrace(
	engine *Engine,
	sourceType string,
	targetType string,
	result bool,
	duration time.Duration,
) {
	tracer.OnRecordTrace(engine,
		tracingCastPrefix+tracingCheckPostfix,
		duration,
		[]attribute.KeyValue{
			attribute.String("source", sourceType),
			attribute.String("target", targetType),
			attribute.Bool("result", result),
		},
	)
}
