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

package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/turbolent/prettier"

	"github.com/sable-analyzer/sable/analysis"
	"github.com/sable-analyzer/sable/parser"
	"github.com/sable-analyzer/sable/pretty"
	"github.com/sable-analyzer/sable/types"
)

var jsonFlag = flag.Bool("json", false, "print the parse tree as JSON")
var prettyFlag = flag.Bool("pretty", false, "print the formatted annotation")
var checkFlag = flag.Bool("check", false, "check that the first annotation casts to the second")
var configFlag = flag.String("config", "", "load the cast policy from a YAML file")
var noColorFlag = flag.Bool("no-color", false, "disable colored output")

const prettyMaxLineWidth = 80

type policyConfig struct {
	NullCastsAsAnyType bool `yaml:"null-casts-as-any-type"`
	NullCastsAsArray   bool `yaml:"null-casts-as-array"`
	CheckGenerics      bool `yaml:"check-generics"`
}

type cliConfig struct {
	Policy policyConfig `yaml:"policy"`
}

func main() {
	flag.Parse()
	args := flag.Args()

	useColor := !*noColorFlag

	policy, err := loadPolicy(*configFlag)
	if err != nil {
		exitWithError(err.Error(), useColor)
	}

	engine := analysis.NewEngine(&analysis.Config{
		Policy: policy,
	})

	if *checkFlag {
		if len(args) != 2 {
			exitWithError("expected a source and a target annotation", useColor)
		}
		check(engine, args[0], args[1], useColor)
		return
	}

	if len(args) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			printType(engine, line, useColor)
		}
		err := scanner.Err()
		if err != nil {
			exitWithError(err.Error(), useColor)
		}
		return
	}

	for _, arg := range args {
		printType(engine, arg, useColor)
	}
}

func loadPolicy(path string) (types.CastPolicy, error) {
	if path == "" {
		return types.CastPolicy{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CastPolicy{}, err
	}
	var config cliConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return types.CastPolicy{}, err
	}
	return types.CastPolicy{
		NullCastsAsAnyType: config.Policy.NullCastsAsAnyType,
		NullCastsAsArray:   config.Policy.NullCastsAsArray,
		CheckGenerics:      config.Policy.CheckGenerics,
	}, nil
}

func printType(engine *analysis.Engine, input string, useColor bool) {
	if *jsonFlag || *prettyFlag {
		expr, err := parser.ParseTypeExpr([]byte(input))
		must(err, input, useColor)

		if *jsonFlag {
			encoded, err := json.MarshalIndent(expr, "", "    ")
			if err != nil {
				exitWithError(err.Error(), useColor)
			}
			fmt.Println(string(encoded))
		} else {
			var builder strings.Builder
			prettier.Prettier(&builder, expr.Doc(), prettyMaxLineWidth, "    ")
			fmt.Println(builder.String())
		}
		return
	}

	union, err := engine.ParseUnion(input, nil, types.FromDoc)
	must(err, input, useColor)
	fmt.Println(union.String())
}

func check(engine *analysis.Engine, sourceInput, targetInput string, useColor bool) {
	source, err := engine.ParseUnion(sourceInput, nil, types.FromDoc)
	must(err, sourceInput, useColor)

	target, err := engine.ParseUnion(targetInput, nil, types.FromDoc)
	must(err, targetInput, useColor)

	ok, err := engine.CanCast(source, target)
	must(err, "", useColor)

	if !ok {
		fmt.Printf("%s cannot cast to %s\n", source, target)
		os.Exit(1)
	}
	fmt.Printf("%s can cast to %s\n", source, target)
}

func must(err error, input string, useColor bool) {
	if err == nil {
		return
	}
	printErr := pretty.NewErrorPrettyPrinter(os.Stderr, useColor).
		PrettyPrintError(err, []byte(input))
	if printErr != nil {
		panic(printErr)
	}
	os.Exit(1)
}

func exitWithError(message string, useColor bool) {
	println(pretty.FormatErrorMessage(pretty.ErrorPrefix, message, useColor))
	os.Exit(1)
}
