// Package progress supervises a running ffmpeg process.
//
// Monitor starts the process with `-progress pipe:1`, drains stdout (the
// key=value progress stream) and stderr (diagnostics) on two reader
// goroutines, and funnels both into one channel consumed by a single writer
// goroutine that renders the bar. Cancelling the context kills the process
// and reports services.ErrInterrupted; a non-zero exit reports
// services.ErrEncode with the captured diagnostics.
package progress
