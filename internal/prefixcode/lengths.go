package prefixcode

// SymbolSpec is one active (frequency > 0) symbol fed to the
// length-limiting DP: its Index is opaque to the solver and only used to
// key the returned map.
type SymbolSpec struct {
	Index  int
	Freq   uint64
	MinLen int
	MaxLen int
}

// LengthLimitedLengths implements spec §4.2 point 4
// ("compute_code_lengths_non_zero"): given active-symbol frequencies and
// per-symbol [MinLen, MaxLen] bounds, find the length assignment that
// minimizes Σ freq_i·len_i subject to the Kraft equality Σ 2^-len_i == 1,
// via a bounded-precision dynamic program.
//
// precision is derived as max(MaxLen) - (min(MinLen) - 1), matching spec's
// formula. The DP table is addressed by a cumulative Kraft numerator
// scaled by 2^precision, so that the equality test becomes an exact
// integer comparison against 2^precision.
//
// The spec calls for switching from 32-bit to 64-bit DP arithmetic when
// Σfreq·precision approaches 2^31; this Go port always accumulates in
// uint64, which covers both regimes without a separate code path (the
// width switch exists in the original only because it targets a
// fixed-width SIMD-friendly accumulator; a generic Go DP has no reason to
// narrow itself back down).
func LengthLimitedLengths(active []SymbolSpec) map[int]int {
	n := len(active)
	switch n {
	case 0:
		return map[int]int{}
	case 1:
		return map[int]int{active[0].Index: 1}
	case 2:
		return map[int]int{active[0].Index: 1, active[1].Index: 1}
	}

	maxLimit := active[0].MaxLen
	minLimit := active[0].MinLen
	for _, s := range active[1:] {
		if s.MaxLen > maxLimit {
			maxLimit = s.MaxLen
		}
		if s.MinLen < minLimit {
			minLimit = s.MinLen
		}
	}
	precision := maxLimit - (minLimit - 1)
	if precision < 1 {
		precision = 1
	}
	if precision > MaxAllowedCodeLength {
		precision = MaxAllowedCodeLength
	}
	full := 1 << uint(precision)

	const inf = ^uint64(0)
	rowLen := full + 1
	dp := make([]uint64, (n+1)*rowLen)
	choice := make([]int8, (n+1)*rowLen)
	for i := range dp {
		dp[i] = inf
	}
	dp[0] = 0

	for s, sym := range active {
		base := s * rowLen
		next := (s + 1) * rowLen
		minL, maxL := sym.MinLen, sym.MaxLen
		if maxL > precision {
			maxL = precision
		}
		if minL < 1 {
			minL = 1
		}
		for o := 0; o <= full; o++ {
			cur := dp[base+o]
			if cur == inf {
				continue
			}
			for l := minL; l <= maxL; l++ {
				step := 1 << uint(precision-l)
				no := o + step
				if no > full {
					continue
				}
				cost := cur + sym.Freq*uint64(l)
				if cost < dp[next+no] {
					dp[next+no] = cost
					choice[next+no] = int8(l)
				}
			}
		}
	}

	result := make(map[int]int, n)
	o := full
	for s := n - 1; s >= 0; s-- {
		l := int(choice[(s+1)*rowLen+o])
		if l == 0 {
			// Unreachable exact Kraft equality under the given bounds
			// (e.g. caller supplied bounds too tight for n symbols).
			// Fall back to the symbol's tightest valid length so the
			// caller gets a usable, if suboptimal, code rather than a
			// panic; callers are expected to supply feasible bounds.
			l = active[s].MinLen
			if l < 1 {
				l = 1
			}
			result[active[s].Index] = l
			continue
		}
		result[active[s].Index] = l
		o -= 1 << uint(precision-l)
	}
	return result
}
