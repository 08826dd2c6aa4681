package span_test

import (
	"fmt"

	"github.com/walteh/redactor/pkg/span"
)

func ExampleRedact() {
	text := "Mr. John Doe went home."
	spans := []span.Span{
		{Start: 0, End: 12},
		{Start: 4, End: 12},
	}

	fmt.Println(span.Redact(text, spans))
	fmt.Println(span.Merge(spans))

	// Output:
	// ████████████ went home.
	// [{0 12}]
}
