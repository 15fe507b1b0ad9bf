/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flanglet/entro/codec"
)

// logLevel derives the active zerolog level from the --verbose flag.
func logLevel() zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}

	return zerolog.InfoLevel
}

func cliOptions() codec.Options {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(logLevel())
	return codec.Options{Logger: &logger}
}
