package encoding

import (
	"github.com/samber/lo"

	"squeeze/internal/ffmpeg"
)

// optionList keeps output options in insertion order with at most one value
// per flag.
type optionList struct {
	args []ffmpeg.Arg
}

func (l *optionList) Set(flag, value string) {
	if _, idx, ok := lo.FindIndexOf(l.args, func(a ffmpeg.Arg) bool { return a.Flag == flag }); ok {
		l.args[idx].Value = value
		return
	}
	l.args = append(l.args, ffmpeg.Arg{Flag: flag, Value: value})
}

func (l *optionList) Append(args ...ffmpeg.Arg) {
	for _, a := range args {
		l.Set(a.Flag, a.Value)
	}
}

func (l *optionList) Args() []ffmpeg.Arg {
	return append([]ffmpeg.Arg(nil), l.args...)
}
