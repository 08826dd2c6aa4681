/*
Package stats aggregates what a redaction run removed.

	+-------------+      +--------------+
	| CategorySet |      |  FileRecord  |
	| (unique per |      | (ordered     |
	|  category)  |      |  events)     |
	+------+------+      +------+-------+
	       |                    |
	       +---------+----------+
	                 |
	          +------+------+
	          |  RunStats   |
	          +------+------+
	                 |
	          +------+------+
	          |  Formatter  |
	          | (text/json) |
	          +-------------+

🎯 Purpose:
- Keep one set of unique redacted strings per category for the whole run
- Keep, per file, the character count and every redaction event in the
  order the detectors produced them
- Render the final report

📝 Nothing derived is stored: counts and sorted views are computed when
read. RunStats is append-only and single-writer; parallel runs use one
instance per worker and Merge them in input order.
*/
package stats
