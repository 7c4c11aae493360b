package rank

import "cmp"

// Compare orders two keys of any domain. Keys of the same domain use that
// domain's Compare; mixed or nil keys fall back to tier order, nil last.
func Compare(a, b Key) int {
	switch x := a.(type) {
	case MediaKey:
		if y, ok := b.(MediaKey); ok {
			return x.Compare(y)
		}
	case PodcastKey:
		if y, ok := b.(PodcastKey); ok {
			return x.Compare(y)
		}
	case PersonKey:
		if y, ok := b.(PersonKey); ok {
			return x.Compare(y)
		}
	case BookKey:
		if y, ok := b.(BookKey); ok {
			return x.Compare(y)
		}
	}
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(a.TierValue(), b.TierValue())
}
