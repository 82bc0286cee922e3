package encoding

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"squeeze/internal/media"
)

// OutputPath builds "<dir>/<stem>_<attr>_<attr><suffix>" next to the input.
// Trailing underscores on the stem are dropped so chained outputs do not
// accumulate separators.
func OutputPath(in media.Descriptor, attrs []string, suffix string) string {
	name := strings.TrimRight(in.Stem(), "_")
	if len(attrs) > 0 {
		name += "_" + strings.Join(attrs, "_")
	}
	return filepath.Join(filepath.Dir(in.Path), name+suffix)
}

func crfAttr(crf int) string {
	return fmt.Sprintf("crf%d", crf)
}

func fpsAttr(rate media.Rational) string {
	return formatNumber(math.Round(rate.Float()*100)/100) + "fps"
}

func kbpsAttr(prefix string, bitrate int64) string {
	return fmt.Sprintf("%s%dkbps", prefix, int64(math.Round(float64(bitrate)/1000)))
}

func durationAttr(seconds float64) string {
	return formatDecimal(seconds) + "s"
}

func speedAttr(factor float64) string {
	return formatDecimal(factor) + "x"
}

// formatNumber renders the shortest decimal form: 25, 0.5, 29.97.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDecimal always keeps a fractional part: 4.0, 2.5.
func formatDecimal(v float64) string {
	s := formatNumber(v)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
