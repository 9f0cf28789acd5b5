// Copyright 2023 Google LLC.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package peg

import "github.com/npillmayer/schuko/tracing"

// tracer returns the package-scoped trace sink for matcher internals:
// seed-growth steps, abort-flag transitions, and indent/dedent
// activity. Under the default adapter this emits nothing; installing
// a trace adapter via schuko's configuration surfaces the full
// seed-growth trace. No operation's result depends on whether tracing
// is enabled.
func tracer() tracing.Trace {
	return tracing.Select("peg.matcher")
}
