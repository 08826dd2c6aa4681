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
Package pipeline runs the detectors over one document in a fixed order.

	+-----+   names   +------------+   dates   +------------+
	| RAW | --------> | NAMES_DONE | --------> | DATES_DONE |
	+-----+           +------------+           +-----+------+
	                                                 | phones
	+---------------+ concepts +----------------+    v
	| CONCEPTS_DONE | <------- | ADDRESSES_DONE | <- PHONES_DONE
	+---------------+          +----------------+   addresses

🎯 Purpose:
- Compose the five detectors explicitly; there is no registry
- Rewrite the current text after every stage so later patterns never see
  text an earlier stage already blocked out
- Feed every match into the run statistics

🔄 Each stage:
1. Detect matches on the current text
2. Record each match (unique set + file event, detector order)
3. Merge the match spans and rewrite the current text
4. Append the merged spans to the document and advance the state

⚠️ A detector error stops the document at that stage. Earlier stages are
kept and nothing is retried.
*/
package pipeline
