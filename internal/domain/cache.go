package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// ResultCache maps a content hash to the result the engine produced for it.
// Results are only reusable for the engine version that produced them.
type ResultCache struct {
	EngineVersion string                       `json:"engine_version"`
	Results       map[string]*ValidationResult `json:"results"`
}

// NewResultCache returns an empty cache bound to engineVersion.
func NewResultCache(engineVersion string) *ResultCache {
	return &ResultCache{
		EngineVersion: engineVersion,
		Results:       make(map[string]*ValidationResult),
	}
}

func (c *ResultCache) IsInvalidated(engineVersion string) bool {
	return c.EngineVersion != engineVersion
}

// ContentKey is the cache key for a workflow source: the hex sha256 of its content.
func ContentKey(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
