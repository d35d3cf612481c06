package seatmap

import (
	"fmt"
	"math"
	"sort"

	"github.com/seatwise/seatwise/internal/domain"
)

// priceCents computes the display price of one seat.
func priceCents(basePriceCents int64, multiplier float64) int64 {
	return int64(math.Round(float64(basePriceCents) * multiplier))
}

// layoutHints derives the cosmetic rendering hints for a venue. The values
// are deterministic functions of the venue ID so the same venue always
// renders the same theater shape.
func layoutHints(venueID int64) domain.SeatMapLayout {
	shapes := []string{"proscenium", "curved", "amphitheater"}

	return domain.SeatMapLayout{
		Shape:       shapes[int(venueID%3)],
		ScreenWidth: 24 + int(venueID%4)*8,
		RowSpacing:  2 + int(venueID%2),
	}
}

// assemble builds the display-ready seat map from already-loaded state. A
// seat is available unless something excludes it: an active hold or a
// capacity-shortfall reservation shows as reserved, and a seat that is
// neither available nor held is sold. Sold status is derived by
// elimination, there is no dedicated flag.
func assemble(
	sched *domain.ShowSchedule,
	venue *domain.Venue,
	seats []domain.Seat,
	held map[int64]bool,
	sold map[int64]bool,
) domain.SeatMap {
	sm := domain.SeatMap{
		ShowID:     sched.ShowID,
		ScheduleID: sched.ID,
		Layout:     layoutHints(venue.ID),
	}

	if len(seats) == 0 {
		sm.Empty = true
		sm.Reason = fmt.Sprintf("venue %d has no seats configured", venue.ID)
		return sm
	}

	var capacityReserved map[int64]bool
	shortfall := venue.PhysicalCapacity - sched.TotalSeats
	if shortfall > 0 {
		blocked := make(map[int64]bool, len(held)+len(sold))
		for id := range held {
			blocked[id] = true
		}
		for id := range sold {
			blocked[id] = true
		}
		capacityReserved = capacityShortfall(seats, blocked, shortfall)
		sm.Meta.CapacityReason = fmt.Sprintf(
			"schedule allotment %d below venue capacity %d",
			sched.TotalSeats, venue.PhysicalCapacity,
		)
	}

	byRow := make(map[string][]domain.SeatMapSeat)
	for _, seat := range seats {
		mapped := domain.SeatMapSeat{
			SeatID:     seat.ID,
			Row:        seat.Row,
			Number:     seat.Number,
			Category:   seat.Category,
			PriceCents: priceCents(sched.BasePriceCents, seat.PriceMultiplier),
		}

		switch {
		case held[seat.ID]:
			mapped.State = domain.SeatReserved
		case capacityReserved[seat.ID]:
			mapped.State = domain.SeatReserved
			mapped.CapacityReserved = true
		case sold[seat.ID]:
			mapped.State = domain.SeatSold
		default:
			mapped.State = domain.SeatAvailable
		}

		byRow[seat.Row] = append(byRow[seat.Row], mapped)
	}

	labels := make([]string, 0, len(byRow))
	for label := range byRow {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return rowLabelRank(labels[i]) < rowLabelRank(labels[j])
	})

	sm.Rows = make([]domain.SeatMapRow, 0, len(labels))
	sm.Meta.RowLengths = make(map[string]int, len(labels))

	for _, label := range labels {
		rowSeats := byRow[label]
		sort.Slice(rowSeats, func(i, j int) bool {
			return rowSeats[i].Number < rowSeats[j].Number
		})

		sm.Rows = append(sm.Rows, domain.SeatMapRow{Label: label, Seats: rowSeats})
		sm.Meta.RowLengths[label] = len(rowSeats)
		if len(rowSeats) > sm.Meta.MaxRowLength {
			sm.Meta.MaxRowLength = len(rowSeats)
		}

		for _, seat := range rowSeats {
			switch seat.State {
			case domain.SeatAvailable:
				sm.Meta.Available++
			case domain.SeatReserved:
				sm.Meta.Reserved++
			case domain.SeatSold:
				sm.Meta.Sold++
			}
			if seat.CapacityReserved {
				sm.Meta.CapacityReservedSeats++
			}
		}
	}

	sm.Meta.TotalSeats = len(seats)
	sm.Meta.Rows = len(sm.Rows)

	return sm
}
