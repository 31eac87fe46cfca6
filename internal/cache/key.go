package cache

import "net/url"

// Key identifies one fetchable query: a resource tag plus every parameter
// that affects the response, canonicalized so that structurally equal
// keys compare equal. Two reads with equal keys share one in-flight
// request and one cached result.
type Key struct {
	Resource string
	Params   string
}

// NewKey canonicalizes params (url.Values.Encode sorts by name) into a
// comparable key.
func NewKey(resource string, params url.Values) Key {
	return Key{Resource: resource, Params: params.Encode()}
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + "?" + k.Params
}
