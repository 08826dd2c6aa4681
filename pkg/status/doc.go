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
Package status owns the output directory of a run.

	+-------------+
	|  Operation  |
	| (redacted)  |
	+------+------+
	       |
	+------+------+
	|   Status    |
	| (Manager)   |
	+------+------+
	       |
	+------+------+
	| Output Dir  |
	| *.redacted  |
	+-------------+

🎯 Purpose:
- Writes redacted documents atomically
- Tracks what happened to every output (new, modified, unchanged, failed)
- Reports progress across the run

⚡ Key Responsibilities:
- Every write failure is marked fault.ErrOutputWrite, which stops the run
- Re-running over the same inputs reports outputs as unchanged
- Tracking is safe for the parallel runner
*/
package status
