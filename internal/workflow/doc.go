// Package workflow runs a batch of input files through the requested
// actions.
//
// Files are processed strictly one at a time. For each file the Runner
// validates the path, probes it, and chains the enabled actions in a fixed
// order (trim, speed, audio, normalize); each executed step re-probes the
// previous step's output so the next step sees what was actually written.
// In print-only mode nothing is written, so every step is planned against the
// original input. Invalid input files are skipped with a warning; any other
// failure, including an interrupt, stops the batch.
package workflow
