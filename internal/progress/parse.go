package progress

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Snapshot is one completed block of ffmpeg progress output.
type Snapshot struct {
	Frame     int64
	FPS       float64
	TotalSize int64
	Bitrate   string
	Speed     string
	// OutTime is the encoded output position in seconds.
	OutTime float64
	Done    bool
}

// Token is one key=value pair from the progress stream.
type Token struct {
	Key   string
	Value string
}

// ParseLine splits a progress line. Lines without '=' are free text.
func ParseLine(line string) (Token, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return Token{}, false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t") {
		return Token{}, false
	}
	return Token{Key: key, Value: strings.TrimSpace(value)}, true
}

// time source precedence within one block
const (
	sourceNone = iota
	sourceOutTime
	sourceOutTimeMS
	sourceOutTimeUS
)

// Parser accumulates tokens until a "progress" key closes the block.
type Parser struct {
	current Snapshot
	source  int
}

// Feed consumes one token and returns the finished snapshot when the token
// ends a block.
func (p *Parser) Feed(tok Token) (Snapshot, bool) {
	switch tok.Key {
	case "frame":
		p.current.Frame = max(parseInt(tok.Value), 0)
	case "fps":
		p.current.FPS = max(parseFloat(tok.Value), 0)
	case "total_size":
		p.current.TotalSize = max(parseInt(tok.Value), 0)
	case "bitrate":
		p.current.Bitrate = tok.Value
	case "speed":
		p.current.Speed = tok.Value
	case "out_time_us":
		p.setTime(sourceOutTimeUS, microseconds(tok.Value))
	case "out_time_ms":
		// ffmpeg reports microseconds under this key as well
		p.setTime(sourceOutTimeMS, microseconds(tok.Value))
	case "out_time":
		p.setTime(sourceOutTime, clockSeconds(tok.Value))
	case "progress":
		snap := p.current
		snap.Done = tok.Value == "end"
		p.source = sourceNone
		return snap, true
	}
	return Snapshot{}, false
}

func (p *Parser) setTime(source int, seconds float64) {
	if source < p.source || math.IsNaN(seconds) {
		return
	}
	p.source = source
	p.current.OutTime = max(seconds, 0)
}

// Percent returns elapsed/total as a percentage clamped to [0, 100]. An
// unknown total yields 0.
func Percent(elapsed, total float64) float64 {
	if total <= 0 || math.IsNaN(elapsed) {
		return 0
	}
	return math.Min(math.Max(elapsed/total*100, 0), 100)
}

func parseInt(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// microseconds returns NaN when value is not a number (ffmpeg writes N/A
// before the first frame).
func microseconds(value string) float64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return math.NaN()
	}
	return float64(n) / float64(time.Second/time.Microsecond)
}

// clockSeconds parses HH:MM:SS.ffffff, allowing a leading minus sign.
func clockSeconds(value string) float64 {
	negative := strings.HasPrefix(value, "-")
	fields := strings.Split(strings.TrimPrefix(value, "-"), ":")
	if len(fields) != 3 {
		return math.NaN()
	}
	var total float64
	for _, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return math.NaN()
		}
		total = total*60 + f
	}
	if negative {
		return -total
	}
	return total
}
