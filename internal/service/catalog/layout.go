package catalog

import "github.com/seatwise/seatwise/internal/domain"

const (
	multiplierStandard = 1.0
	multiplierVIP      = 1.5
	multiplierPremium  = 2.0
)

// rowLabel converts a zero-based row index to its label: 0 is "A", 25 is
// "Z", 26 is "AA". Inverse of the base-26 ordering used when sorting rows.
func rowLabel(idx int) string {
	label := ""
	n := idx + 1
	for n > 0 {
		n--
		label = string(rune('A'+n%26)) + label
		n /= 26
	}
	return label
}

// buildLayout expands layout parameters into the full seat grid. Front rows
// get PREMIUM, back rows VIP, everything between STANDARD.
func buildLayout(p LayoutParams) ([]domain.Seat, error) {
	if p.Rows <= 0 || p.SeatsPerRow <= 0 {
		return nil, ErrInvalidLayout
	}

	if p.PremiumRows < 0 || p.VIPRows < 0 || p.PremiumRows+p.VIPRows > p.Rows {
		return nil, ErrInvalidLayout
	}

	seats := make([]domain.Seat, 0, p.Rows*p.SeatsPerRow)

	for row := 0; row < p.Rows; row++ {
		category := domain.SeatStandard
		multiplier := multiplierStandard

		switch {
		case row < p.PremiumRows:
			category = domain.SeatPremium
			multiplier = multiplierPremium
		case row >= p.Rows-p.VIPRows:
			category = domain.SeatVIP
			multiplier = multiplierVIP
		}

		label := rowLabel(row)
		for num := 1; num <= p.SeatsPerRow; num++ {
			seats = append(seats, domain.Seat{
				Row:             label,
				Number:          num,
				Category:        category,
				PriceMultiplier: multiplier,
			})
		}
	}

	return seats, nil
}
