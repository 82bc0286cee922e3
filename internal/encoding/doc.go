// Package encoding derives output parameters and ffmpeg command lines for the
// four squeeze actions.
//
// A Task moves through Created, Configured, Built, and finally Executed or
// Printed. Configuration methods (Normalize, Trim, ChangeSpeed, ExportAudio)
// fill ordered filter chains, output options, and filename attributes; Build
// applies rate control and codec tuning and names the output file; Run either
// returns the shell command or hands the invocation to an Executor.
//
// Normalize is a pure function of the probed input and the Profile and never
// raises bitrate, frame rate, or height above a known input value.
package encoding
