package attrindex

// ConfidenceIndex buckets engrams by floor(confidence * 10) into 11
// buckets (0..10), supporting "confidence >= c" range queries by unioning
// buckets floor(c*10)..10 (spec §4.D).
type ConfidenceIndex struct {
	buckets map[int]map[string]bool
}

// NewConfidenceIndex returns an empty ConfidenceIndex.
func NewConfidenceIndex() *ConfidenceIndex {
	return &ConfidenceIndex{buckets: make(map[int]map[string]bool)}
}

// Bucket computes floor(confidence * 10), clamped to [0, 10].
func Bucket(confidence float64) int {
	b := int(confidence * 10)
	if b < 0 {
		return 0
	}
	if b > 10 {
		return 10
	}
	return b
}

// Add records engramID under confidence's bucket.
func (c *ConfidenceIndex) Add(confidence float64, engramID string) {
	b := Bucket(confidence)
	set, ok := c.buckets[b]
	if !ok {
		set = make(map[string]bool)
		c.buckets[b] = set
	}
	set[engramID] = true
}

// Remove drops engramID from confidence's bucket.
func (c *ConfidenceIndex) Remove(confidence float64, engramID string) {
	b := Bucket(confidence)
	set, ok := c.buckets[b]
	if !ok {
		return
	}
	delete(set, engramID)
	if len(set) == 0 {
		delete(c.buckets, b)
	}
}

// AtLeast returns every engram id whose bucket is >= floor(minConfidence*10).
func (c *ConfidenceIndex) AtLeast(minConfidence float64) map[string]bool {
	minBucket := Bucket(minConfidence)
	result := make(map[string]bool)
	for b := minBucket; b <= 10; b++ {
		for id := range c.buckets[b] {
			result[id] = true
		}
	}
	return result
}
