// Package media turns ffprobe output into immutable descriptors of the
// streams squeeze cares about: the first audio stream and the first motion
// video stream, plus container tags and duration. Frame rates are kept as
// exact rationals.
package media
