// Package main hosts the squeeze CLI entrypoint and command graph.
//
// The root command takes media files and the action flags (normalize, trim,
// speed, audio export, info) and hands them to the workflow runner, which
// encodes through the progress monitor or, with --command, prints the
// equivalent ffmpeg command lines. The config and check subcommands cover
// configuration scaffolding and toolchain verification.
package main
