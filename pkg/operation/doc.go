// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package operation drives a redaction run across many documents.

	+-------------+
	|   Inputs    |
	| (doublestar)|
	+------+------+
	       |
	+------+------+
	|   Runner    |
	| (seq/async) |
	+------+------+
	       |
	+------+------+     +-------------+
	|  Pipeline   | --> |   Status    |
	| (per file)  |     | (outputs)   |
	+------+------+     +-------------+
	       |
	+------+------+
	|   Report    |
	| (stats)     |
	+-------------+

🎯 Purpose:
- Expands the input glob into a stable list of files
- Runs every file through the pipeline, one after another or with a
  bounded worker group
- Writes each result to <output>/<basename>.<suffix>
- Applies the error policy uniformly and collects failures for the report

🔄 Flow:
1. ExpandInputs resolves the glob (supports **)
2. Runner reads and decodes each input (InputReadError on failure)
3. The pipeline redacts the document into a per-file stats fragment
4. status.Manager writes the output (OutputWriteError is always fatal)
5. Fragments of successful files are merged into the run stats in input
   order, so parallel and sequential runs report the same thing
6. WriteReport renders the stats once at the end

⚡ Policy:
- skip: a failed document is reported and the run continues
- abort: the first failed document stops the run; the rest are reported
  as skipped
*/
package operation
