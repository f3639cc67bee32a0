package cache

// Keyer derives cache keys from request identity.
//
// The API key never participates in key derivation: rotating credentials
// must not invalidate cached responses, and key material must not leak
// into backend key spaces.
type Keyer interface {
	// ResponseKey generates a key for a metadata or data response,
	// identified by its route and canonicalized query string.
	ResponseKey(route, query string) string
}

// DefaultKeyer hashes route and query into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResponseKey generates a key for an API response.
func (k *DefaultKeyer) ResponseKey(route, query string) string {
	return hashKey("response", route, query)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple clients can share
// one backend without colliding (for example one Redis instance serving
// several base URLs).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResponseKey generates a prefixed key for an API response.
func (k *ScopedKeyer) ResponseKey(route, query string) string {
	return k.prefix + k.inner.ResponseKey(route, query)
}
