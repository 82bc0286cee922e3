package encoding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/samber/lo"

	"squeeze/internal/ffmpeg"
	"squeeze/internal/media"
	"squeeze/internal/services"
)

// Action is the transformation a Task performs.
type Action string

const (
	ActionNormalize   Action = "normalize"
	ActionTrim        Action = "trim"
	ActionSpeed       Action = "speed"
	ActionExportAudio Action = "audio"
)

// State tracks a Task through configure, build, and run.
type State int

const (
	StateCreated State = iota
	StateConfigured
	StateBuilt
	StateExecuted
	StatePrinted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConfigured:
		return "configured"
	case StateBuilt:
		return "built"
	case StateExecuted:
		return "executed"
	case StatePrinted:
		return "printed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidState reports an out-of-order Task call.
var ErrInvalidState = errors.New("invalid task state")

// Settings are per-run knobs that do not change output parameters.
type Settings struct {
	FFmpeg   string
	LogLevel string
}

// Executor runs a built invocation to completion.
type Executor interface {
	Run(ctx context.Context, inv ffmpeg.Invocation) error
}

// Result describes a finished task.
type Result struct {
	Output  media.Descriptor
	Command string
	Printed bool
}

type trimWindow struct {
	start float64
	end   float64
}

// Task accumulates the filters, options, and filename attributes for one
// action on one input file.
type Task struct {
	action   Action
	state    State
	input    media.Descriptor
	output   media.Descriptor
	profile  Profile
	settings Settings

	videoFilters FilterChain
	audioFilters FilterChain
	window       *trimWindow
	attrs        []string
	crf          int
	format       string
	suffix       string
	dropVideo    bool
	copyAudio    bool
	audioBitrate bool

	invocation ffmpeg.Invocation
}

// NewTask starts a task for input. The output descriptor begins as an
// independent copy of input.
func NewTask(input media.Descriptor, profile Profile, settings Settings) *Task {
	return &Task{
		state:    StateCreated,
		input:    input.Clone(),
		output:   input.Clone(),
		profile:  profile,
		settings: settings,
	}
}

func (t *Task) Action() Action { return t.action }

func (t *Task) State() State { return t.state }

// Input returns a copy of the probed input descriptor.
func (t *Task) Input() media.Descriptor { return t.input.Clone() }

// Output returns a copy of the predicted output descriptor. After Build its
// Path is the output file.
func (t *Task) Output() media.Descriptor { return t.output.Clone() }

// Invocation returns the built command. It is zero before Build.
func (t *Task) Invocation() ffmpeg.Invocation { return t.invocation }

// Normalize re-encodes to the profile ceilings.
func (t *Task) Normalize() error {
	if err := t.expect(StateCreated, "normalize"); err != nil {
		return err
	}
	t.output = Normalize(t.input, t.profile)
	if t.output.HasVideo {
		t.crf = t.profile.CRFFor(t.output.Video.Codec)
		t.videoFilters = append(t.videoFilters,
			ScaleFilter(t.output.Video.Height),
			FPSFilter(t.output.Video.FrameRate),
		)
		t.attrs = append(t.attrs, crfAttr(t.crf), fpsAttr(t.output.Video.FrameRate))
		t.format, t.suffix = t.profile.VideoFormat, t.profile.VideoSuffix
	} else {
		t.format, t.suffix = t.profile.AudioFormat, t.profile.AudioSuffix
	}
	if t.output.HasAudio {
		t.audioBitrate = true
		t.attrs = append(t.attrs, kbpsAttr("a", t.output.Audio.BitRate))
	}
	t.configured(ActionNormalize)
	return nil
}

// Trim keeps the [start, end) window. Audio is stream-copied.
func (t *Task) Trim(start, end string) error {
	if err := t.expect(StateCreated, "trim"); err != nil {
		return err
	}
	from, err := ParseTimestamp(start)
	if err != nil {
		return err
	}
	to, err := ParseTimestamp(end)
	if err != nil {
		return err
	}
	if to <= from {
		return services.Wrap(services.ErrValidation, "trim", "window", fmt.Sprintf("end %q must be after start %q", end, start), nil)
	}
	if t.input.Duration > 0 && from >= t.input.Duration {
		return services.Wrap(services.ErrValidation, "trim", "window", fmt.Sprintf("start %q is beyond the %.3fs input", start, t.input.Duration), nil)
	}
	t.keepContainer()
	t.window = &trimWindow{start: from, end: to}
	duration := math.Round((to-from)*1000) / 1000
	t.output.Duration = duration
	if t.output.HasAudio {
		t.copyAudio = true
	}
	t.reencodeVideo()
	t.attrs = append(t.attrs, durationAttr(duration))
	t.configured(ActionTrim)
	return nil
}

// ChangeSpeed retimes audio and video by factor (2 plays twice as fast).
func (t *Task) ChangeSpeed(factor float64) error {
	if err := t.expect(StateCreated, "speed"); err != nil {
		return err
	}
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return services.Wrap(services.ErrValidation, "speed", "factor", fmt.Sprintf("factor must be a positive number, got %v", factor), nil)
	}
	t.keepContainer()
	if t.output.HasVideo {
		t.videoFilters = append(t.videoFilters, SetPTSFilter(factor))
		t.reencodeVideo()
	}
	if t.output.HasAudio {
		t.audioFilters = append(t.audioFilters, AtempoChain(factor)...)
		t.output.Audio.Codec = audioCodecForFormat(t.format, t.profile)
	}
	if t.input.Duration > 0 {
		t.output.Duration = t.input.Duration / factor
	}
	t.attrs = append(t.attrs, speedAttr(factor))
	t.configured(ActionSpeed)
	return nil
}

// ExportAudio drops video and writes normalized audio in the audio container.
func (t *Task) ExportAudio() error {
	if err := t.expect(StateCreated, "audio"); err != nil {
		return err
	}
	if !t.input.HasAudio {
		return services.Wrap(services.ErrInvalidInput, "audio", "export", "input has no audio stream", nil)
	}
	t.output = NormalizeAudio(t.input, t.profile)
	t.dropVideo = t.input.HasVideo
	t.audioBitrate = true
	t.format, t.suffix = t.profile.AudioFormat, t.profile.AudioSuffix
	t.attrs = append(t.attrs, kbpsAttr("a", t.output.Audio.BitRate))
	t.configured(ActionExportAudio)
	return nil
}

// Build resolves rate control, codec tuning, and the output filename into an
// ffmpeg invocation.
func (t *Task) Build() error {
	if err := t.expect(StateConfigured, "build"); err != nil {
		return err
	}
	var opts optionList
	videoOut := t.output.HasVideo && !t.dropVideo
	if t.dropVideo {
		opts.Set("-vn", "")
	}
	if videoOut {
		opts.Set("-c:v", t.output.Video.Codec)
	}
	if t.output.HasAudio {
		if t.copyAudio {
			opts.Set("-c:a", "copy")
		} else {
			opts.Set("-c:a", t.output.Audio.Codec)
		}
		if t.audioBitrate {
			opts.Set("-b:a", ffmpeg.Int(t.output.Audio.BitRate))
		}
	}
	if videoOut {
		t.applyRateControl(&opts)
		opts.Append(CodecTuning(t.output.Video.Codec, t.profile.RateControl)...)
	}
	if t.window != nil {
		opts.Set("-ss", formatNumber(t.window.start))
		opts.Set("-to", formatNumber(t.window.end))
	}

	path := OutputPath(t.input, t.attrs, t.suffix)
	if path == t.input.Path {
		return services.Wrap(services.ErrValidation, string(t.action), "output", "output would overwrite the input", nil)
	}
	t.output.Path = path
	t.invocation = ffmpeg.Invocation{
		Binary:       t.settings.FFmpeg,
		Input:        t.input.Path,
		Output:       path,
		Options:      opts.Args(),
		VideoFilters: t.videoFilters.String(),
		AudioFilters: t.audioFilters.String(),
		Format:       t.format,
		LogLevel:     t.settings.LogLevel,
		Duration:     t.output.Duration,
	}
	t.state = StateBuilt
	return nil
}

// Run prints or executes the built invocation.
func (t *Task) Run(ctx context.Context, exec Executor, printOnly bool) (Result, error) {
	if err := t.expect(StateBuilt, "run"); err != nil {
		return Result{}, err
	}
	result := Result{Output: t.Output(), Command: t.invocation.ShellString()}
	if printOnly {
		t.state = StatePrinted
		result.Printed = true
		return result, nil
	}
	if exec == nil {
		return Result{}, fmt.Errorf("%w: no executor", ErrInvalidState)
	}
	if err := exec.Run(ctx, t.invocation); err != nil {
		return Result{}, err
	}
	t.state = StateExecuted
	return result, nil
}

func (t *Task) applyRateControl(opts *optionList) {
	switch t.profile.RateControl {
	case RateControlCBR:
		vbr := t.output.Video.BitRate
		if vbr <= 0 {
			vbr = t.profile.VideoBitrate
		}
		opts.Set("-b:v", ffmpeg.Int(vbr-1))
		opts.Set("-maxrate", ffmpeg.Int(vbr))
		opts.Set("-bufsize", ffmpeg.Int(vbr/2))
		t.attrs = append([]string{kbpsAttr("v", vbr)}, lo.Without(t.attrs, crfAttr(t.crf))...)
	default:
		opts.Set("-crf", strconv.Itoa(t.crf))
	}
}

// keepContainer selects the output container for actions that keep the
// input suffix.
func (t *Task) keepContainer() {
	t.suffix = t.input.Suffix()
	t.format = selectFormat(t.input)
	t.output.Formats = []string{t.format}
}

func (t *Task) reencodeVideo() {
	if !t.output.HasVideo {
		return
	}
	t.output.Video.Codec = videoCodecForFormat(t.format, t.profile)
	t.output.Video.BitRate = capValue(t.input.Video.BitRate, t.profile.VideoBitrate)
	t.crf = t.profile.CRFFor(t.output.Video.Codec)
}

func (t *Task) expect(want State, op string) error {
	if t.state != want {
		return fmt.Errorf("%w: %s requires %s task, got %s", ErrInvalidState, op, want, t.state)
	}
	return nil
}

func (t *Task) configured(action Action) {
	t.action = action
	t.state = StateConfigured
}
