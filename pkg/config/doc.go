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
Package config loads and validates the run configuration of redactor.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   JSON   | |   YAML   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Reads a config file in whichever format its extension names
- Applies defaults and rejects bad values
- Exposes the error policy as part of the run configuration

🔄 Flow:
1. LoadConfig picks a parser by extension
2. The parser decodes strictly (unknown fields are errors)
3. Defaults are applied
4. The CLI layers its flags on top and calls Validate

🔍 Example (HCL, environment variables are available as env.NAME):

	input    = "docs/*.txt"
	output   = "${env.HOME}/redacted"
	concepts = ["merger", "acquisition"]
	on_error = "abort"

	entities {
	  endpoint  = "http://localhost:8000"
	  timeout   = "5s"
	}
*/
package config
