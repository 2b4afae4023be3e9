package supertag

import (
	"strings"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/npillmayer/ccgsrl/ccg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Cache memoizes the results of a Source, keyed by the exact word sequence of
// a sentence. It is safe for concurrent use. Concurrent misses for the same
// sentence may call the source more than once; the first result stored wins.
type Cache struct {
	source Source
	store  *fastcache.Cache
}

// NewCache wraps a source with a cache of (roughly) maxBytes capacity.
func NewCache(source Source, maxBytes int) *Cache {
	return &Cache{
		source: source,
		store:  fastcache.New(maxBytes),
	}
}

// CacheStats reports the usage of a cache.
type CacheStats struct {
	Lookups uint64
	Misses  uint64
	Entries uint64
	Bytes   uint64
}

// Tag implements Source.
func (c *Cache) Tag(words []string) ([][]Tagged, error) {
	key := []byte(sentenceKey(words))
	if buf := c.store.GetBig(nil, key); len(buf) > 0 {
		tags, err := decodeTags(buf)
		if err == nil {
			return tags, nil
		}
		tracer().Errorf("dropping undecodable cache entry: %v", err)
	}
	tags, err := c.source.Tag(words)
	if err != nil {
		return nil, err
	}
	if !c.store.Has(key) {
		buf, err := encodeTags(tags)
		if err != nil {
			return nil, err
		}
		c.store.SetBig(key, buf)
	}
	return tags, nil
}

// Stats returns the current statistics of c.
func (c *Cache) Stats() CacheStats {
	var s fastcache.Stats
	c.store.UpdateStats(&s)
	return CacheStats{
		Lookups: s.GetBigCalls,
		Misses:  s.Misses,
		Entries: s.EntriesCount,
		Bytes:   s.BytesSize,
	}
}

// Reset removes all entries from c.
func (c *Cache) Reset() {
	c.store.Reset()
}

func sentenceKey(words []string) string {
	return strings.Join(words, "\x00")
}

// wireTag is the serialized form of a Tagged.
type wireTag struct {
	Category string  `yaml:"cat"`
	LogProb  float64 `yaml:"p"`
}

func encodeTags(tags [][]Tagged) ([]byte, error) {
	wire := make([][]wireTag, len(tags))
	for i, word := range tags {
		wire[i] = make([]wireTag, len(word))
		for j, t := range word {
			wire[i][j] = wireTag{Category: t.Category.String(), LogProb: t.LogProb}
		}
	}
	buf, err := yaml.Marshal(wire)
	return buf, errors.Wrap(err, "encoding supertags")
}

func decodeTags(buf []byte) ([][]Tagged, error) {
	var wire [][]wireTag
	if err := yaml.Unmarshal(buf, &wire); err != nil {
		return nil, errors.Wrap(err, "decoding supertags")
	}
	return fromWire(wire)
}

func fromWire(wire [][]wireTag) ([][]Tagged, error) {
	tags := make([][]Tagged, len(wire))
	for i, word := range wire {
		tags[i] = make([]Tagged, len(word))
		for j, w := range word {
			c, err := ccg.Parse(w.Category)
			if err != nil {
				return nil, errors.Wrapf(err, "supertag of word %d", i)
			}
			tags[i][j] = Tagged{Category: c, LogProb: w.LogProb}
		}
		SortTags(tags[i])
	}
	return tags, nil
}
