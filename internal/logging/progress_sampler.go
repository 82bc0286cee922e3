package logging

// ProgressSampler thins progress updates to one per percentage bucket, for
// output that cannot redraw a bar in place.
type ProgressSampler struct {
	bucketSize float64
	lastBucket int
	finished   bool
}

// NewProgressSampler returns a sampler with the given bucket width in
// percent. Non-positive widths use 5.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 5
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldEmit reports whether percent entered a bucket not seen yet. 100 is
// reported exactly once; negative (unknown) percentages never are.
func (s *ProgressSampler) ShouldEmit(percent float64) bool {
	if s == nil {
		return true
	}
	if percent < 0 || s.finished {
		return false
	}
	if percent >= 100 {
		s.finished = true
		return true
	}
	bucket := int(percent / s.bucketSize)
	if bucket <= s.lastBucket {
		return false
	}
	s.lastBucket = bucket
	return true
}
