package cmd

import (
	"fmt"
	"os"
)

// cliProgress renders a single updating line of processed-byte counts. It
// is deliberately minimal: the ferox package's ProgressSink contract asks
// only for byte counts, no formatting help.
type cliProgress struct {
	label     string
	processed int64
}

func (p *cliProgress) OnBytes(n int) {
	p.processed += int64(n)
	if !verboseFlag {
		return
	}
	fmt.Fprintf(os.Stderr, "\r%s: %d bytes", p.label, p.processed)
}

func (p *cliProgress) OnFinish(total int64) {
	if !verboseFlag {
		return
	}
	fmt.Fprintf(os.Stderr, "\r%s: %d bytes (done)\n", p.label, total)
}
