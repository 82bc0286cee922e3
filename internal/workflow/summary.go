package workflow

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"squeeze/internal/encoding"
)

// Output is one step's result.
type Output struct {
	Input   string
	Path    string
	Action  encoding.Action
	Command string
	Printed bool
	Size    int64
}

// Summary describes a finished (or aborted) batch.
type Summary struct {
	Processed int
	Skipped   []string
	Outputs   []Output
}

// Written returns the outputs that were actually encoded.
func (s Summary) Written() []Output {
	var written []Output
	for _, out := range s.Outputs {
		if !out.Printed {
			written = append(written, out)
		}
	}
	return written
}

// TotalBytes sums the sizes of written outputs.
func (s Summary) TotalBytes() int64 {
	var total int64
	for _, out := range s.Written() {
		total += out.Size
	}
	return total
}

// String renders a one-line report such as "2 files, 3 outputs, 14 MB".
func (s Summary) String() string {
	line := fmt.Sprintf("%d %s, %d %s, %s",
		s.Processed, plural(s.Processed, "file", "files"),
		len(s.Written()), plural(len(s.Written()), "output", "outputs"),
		humanize.Bytes(uint64(max(s.TotalBytes(), 0))),
	)
	if n := len(s.Skipped); n > 0 {
		line += fmt.Sprintf(", %d skipped", n)
	}
	return line
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
