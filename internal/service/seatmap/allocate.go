package seatmap

import (
	"sort"

	"github.com/seatwise/seatwise/internal/domain"
)

// rowLabelRank orders row labels base-26 so that multi-letter labels sort
// after single letters: "A" < "B" < ... < "Z" < "AA" < "AB".
func rowLabelRank(label string) int {
	r := 0
	for _, ch := range label {
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		if ch < 'A' || ch > 'Z' {
			continue
		}
		r = r*26 + int(ch-'A') + 1
	}

	return r
}

// shortfallQuotas splits a capacity shortfall of k seats across categories:
// ceil(0.8k) STANDARD and ceil(0.1k) VIP, with the remainder assigned to
// PREMIUM. The ceilings are clamped so the quotas never exceed k in total.
func shortfallQuotas(k int) (standard, vip, premium int) {
	if k <= 0 {
		return 0, 0, 0
	}

	standard = (k*8 + 9) / 10
	if standard > k {
		standard = k
	}

	vip = (k + 9) / 10
	if vip > k-standard {
		vip = k - standard
	}

	premium = k - standard - vip

	return standard, vip, premium
}

// capacityShortfall picks the seats to mark reserved when a schedule's
// allotment is below the venue's physical capacity, so the displayed map
// never offers more seats than the schedule allows. Seats are taken from
// the back rows first, right to left within a row, honoring the per-category
// quotas. A category short of its quota contributes only what it has; no
// borrowing across categories.
//
// Seats in blocked are already sold or held and are not candidates: they
// are unselectable regardless.
func capacityShortfall(seats []domain.Seat, blocked map[int64]bool, k int) map[int64]bool {
	out := make(map[int64]bool)
	if k <= 0 {
		return out
	}

	standard, vip, premium := shortfallQuotas(k)
	quotas := map[domain.SeatCategory]int{
		domain.SeatStandard: standard,
		domain.SeatVIP:      vip,
		domain.SeatPremium:  premium,
	}

	byCategory := make(map[domain.SeatCategory][]domain.Seat)
	for _, s := range seats {
		if blocked[s.ID] {
			continue
		}
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	for cat, quota := range quotas {
		candidates := byCategory[cat]
		sort.Slice(candidates, func(i, j int) bool {
			ri, rj := rowLabelRank(candidates[i].Row), rowLabelRank(candidates[j].Row)
			if ri != rj {
				return ri > rj
			}
			return candidates[i].Number > candidates[j].Number
		})

		if quota > len(candidates) {
			quota = len(candidates)
		}
		for _, s := range candidates[:quota] {
			out[s.ID] = true
		}
	}

	return out
}
