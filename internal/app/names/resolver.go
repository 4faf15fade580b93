package names

import (
	"strings"
	"sync"
)

// Strategy identifies which matching step produced a successful lookup.
// Every non-exact match is attributable to exactly one strategy.
type Strategy string

const (
	StrategyExact      Strategy = "exact"
	StrategyNormalized Strategy = "normalized"
	StrategyAffix      Strategy = "affix"
	StrategyFuzzy      Strategy = "fuzzy"
	StrategyAlias      Strategy = "alias"
)

type Match struct {
	AssetKey string
	Strategy Strategy
}

const lookupCacheCapacity = 256

// Common club-name affixes which sources include or omit freely.
var affixes = map[string]struct{}{
	"fc": {}, "sc": {}, "cf": {}, "ac": {}, "afc": {}, "cfc": {},
	"fk": {}, "sk": {}, "bk": {}, "if": {}, "nk": {}, "as": {},
	"ss": {}, "cd": {}, "rc": {}, "sv": {}, "vfb": {}, "vfl": {},
}

// Resolver maps free-text team names to canonical asset keys. The canonical
// and alias tables are supplied by the caller; the resolver derives its
// normalized and fuzzy indexes from them at construction time.
type Resolver struct {
	exact      map[string]string
	normalized map[string]string
	fuzzy      map[string]string
	aliases    map[string]string
	logger     Logger

	mu    sync.Mutex
	cache *lookupCache
}

func NewResolver(canonical map[string]string, aliases map[string]string, logger Logger) *Resolver {
	r := &Resolver{
		exact:      make(map[string]string, len(canonical)),
		normalized: make(map[string]string, len(canonical)),
		fuzzy:      make(map[string]string, len(canonical)),
		aliases:    make(map[string]string, len(aliases)),
		logger:     logger,
		cache:      newLookupCache(lookupCacheCapacity),
	}

	for name, assetKey := range canonical {
		r.exact[name] = assetKey
		r.normalized[normalize(name)] = assetKey
		r.fuzzy[fuzzyForm(name)] = assetKey
	}

	for alias, assetKey := range aliases {
		r.aliases[normalize(alias)] = assetKey
	}

	return r
}

// Resolve returns the asset key for a team name as it appears in source
// markup, together with the strategy that matched it.
func (r *Resolver) Resolve(name string) (Match, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Match{}, false
	}

	if assetKey, ok := r.exact[name]; ok {
		return Match{AssetKey: assetKey, Strategy: StrategyExact}, true
	}

	normalizedName := normalize(name)

	r.mu.Lock()
	if cached, ok := r.cache.get(normalizedName); ok {
		r.mu.Unlock()
		return cached.match, cached.found
	}
	r.mu.Unlock()

	match, found := r.resolveNormalized(normalizedName)

	r.mu.Lock()
	r.cache.put(normalizedName, lookupResult{match: match, found: found})
	r.mu.Unlock()

	if found {
		r.logger.Debug().Str("name", name).Str("strategy", string(match.Strategy)).Str("asset_key", match.AssetKey).Msg("resolved team name")
	}

	return match, found
}

func (r *Resolver) resolveNormalized(normalizedName string) (Match, bool) {
	if normalizedName == "" {
		return Match{}, false
	}

	if assetKey, ok := r.normalized[normalizedName]; ok {
		return Match{AssetKey: assetKey, Strategy: StrategyNormalized}, true
	}

	if assetKey, ok := r.withoutAffix(normalizedName); ok {
		return Match{AssetKey: assetKey, Strategy: StrategyAffix}, true
	}

	if assetKey, ok := r.fuzzy[strings.ReplaceAll(normalizedName, " ", "")]; ok {
		return Match{AssetKey: assetKey, Strategy: StrategyFuzzy}, true
	}

	if assetKey, ok := r.aliases[normalizedName]; ok {
		return Match{AssetKey: assetKey, Strategy: StrategyAlias}, true
	}

	return Match{}, false
}

func (r *Resolver) withoutAffix(normalizedName string) (string, bool) {
	words := strings.Fields(normalizedName)
	if len(words) < 2 {
		return "", false
	}

	if _, ok := affixes[words[0]]; ok {
		if assetKey, found := r.normalized[strings.Join(words[1:], " ")]; found {
			return assetKey, true
		}
	}

	if _, ok := affixes[words[len(words)-1]]; ok {
		if assetKey, found := r.normalized[strings.Join(words[:len(words)-1], " ")]; found {
			return assetKey, true
		}
	}

	return "", false
}

type lookupResult struct {
	match Match
	found bool
}

// lookupCache is a bounded LRU over normalized lookup forms. Order is kept
// in an explicit slice, oldest first, with the map as the index.
type lookupCache struct {
	capacity int
	entries  map[string]lookupResult
	order    []string
}

func newLookupCache(capacity int) *lookupCache {
	return &lookupCache{
		capacity: capacity,
		entries:  make(map[string]lookupResult, capacity),
	}
}

func (c *lookupCache) get(key string) (lookupResult, bool) {
	result, ok := c.entries[key]
	if !ok {
		return lookupResult{}, false
	}

	c.touch(key)

	return result, true
}

func (c *lookupCache) put(key string, result lookupResult) {
	if _, exists := c.entries[key]; exists {
		c.entries[key] = result
		c.touch(key)
		return
	}

	if len(c.entries) >= c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = result
	c.order = append(c.order, key)
}

func (c *lookupCache) touch(key string) {
	for i := range c.order {
		if c.order[i] == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}
