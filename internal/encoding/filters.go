package encoding

import (
	"fmt"
	"strings"

	"squeeze/internal/media"
)

// Filter is one ffmpeg filter with positional arguments.
type Filter struct {
	Name string
	Args []string
}

func (f Filter) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	return f.Name + "=" + strings.Join(f.Args, ":")
}

// FilterChain is an ordered list of filters applied to one stream class.
type FilterChain []Filter

func (c FilterChain) String() string {
	parts := make([]string, 0, len(c))
	for _, f := range c {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, ",")
}

// atempo accepts factors within this range per stage.
const (
	atempoMin = 0.5
	atempoMax = 100.0
)

// ScaleFilter limits the output height without upscaling and keeps the width even.
// The comma inside min() is escaped so it does not split the chain.
func ScaleFilter(height int) Filter {
	return Filter{Name: "scale", Args: []string{"trunc(oh*a/2)*2", fmt.Sprintf(`min(%d\,ih)`, height)}}
}

func FPSFilter(rate media.Rational) Filter {
	return Filter{Name: "fps", Args: []string{rate.String()}}
}

// SetPTSFilter retimes video frames for a playback speed factor.
func SetPTSFilter(factor float64) Filter {
	return Filter{Name: "setpts", Args: []string{formatNumber(1/factor) + "*PTS"}}
}

// AtempoChain retimes audio, splitting factors outside atempo's supported
// range into several stages whose product is factor.
func AtempoChain(factor float64) FilterChain {
	var chain FilterChain
	for factor > atempoMax {
		chain = append(chain, Filter{Name: "atempo", Args: []string{formatNumber(atempoMax)}})
		factor /= atempoMax
	}
	for factor < atempoMin {
		chain = append(chain, Filter{Name: "atempo", Args: []string{formatNumber(atempoMin)}})
		factor /= atempoMin
	}
	return append(chain, Filter{Name: "atempo", Args: []string{formatNumber(factor)}})
}
