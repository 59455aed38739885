package kernel

// RegularizeRange resolves start:stop:step against a dimension of length
// n. For positive steps the bounds are clamped to [0, n]; for negative
// steps to [-1, n-1], where -1 means "before the first element".
func RegularizeRange(start, stop, step int64, hasStart, hasStop bool, n int64) (int64, int64) {
	if step > 0 {
		if !hasStart {
			start = 0
		} else if start < 0 {
			start += n
		}
		start = clamp(start, 0, n)

		if !hasStop {
			stop = n
		} else if stop < 0 {
			stop += n
		}
		stop = clamp(stop, 0, n)
		if stop < start {
			stop = start
		}
		return start, stop
	}

	if !hasStart {
		start = n - 1
	} else if start < 0 {
		start += n
	}
	start = clamp(start, -1, n-1)

	if !hasStop {
		stop = -1
	} else if stop < 0 {
		stop += n
	}
	stop = clamp(stop, -1, n-1)
	if stop > start {
		stop = start
	}
	return start, stop
}

// RangeLen is the number of positions visited by a regularized range.
func RangeLen(start, stop, step int64) int64 {
	if step > 0 {
		if stop <= start {
			return 0
		}
		return (stop - start + step - 1) / step
	}
	if stop >= start {
		return 0
	}
	return (start - stop - step - 1) / -step
}

// WrapAt resolves a possibly negative position against length n.
func WrapAt(at, n int64) (int64, bool) {
	if at < 0 {
		at += n
	}
	return at, at >= 0 && at < n
}

// ClampRange resolves a contiguous [start, stop) the way a single-step
// range does.
func ClampRange(start, stop, n int64) (int64, int64) {
	return RegularizeRange(start, stop, 1, true, true, n)
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
