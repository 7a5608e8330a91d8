package schedule

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

const (
	startHour   = 9
	endHour     = 17
	slotMinutes = 30
	daysAhead   = 2
	slotsPerDay = 2
)

// Slots returns synthetic appointment availability for the next two
// days: two random 30-minute slots per day within working hours
// (09:00-17:00), sorted, keyed by ISO date.
func Slots(now time.Time, rng *rand.Rand) map[string][]string {
	grid := slotGrid()

	out := make(map[string][]string, daysAhead)
	for day := 1; day <= daysAhead; day++ {
		date := now.AddDate(0, 0, day).Format("2006-01-02")

		perm := rng.Perm(len(grid))
		chosen := make([]string, slotsPerDay)
		for i := range chosen {
			chosen[i] = grid[perm[i]]
		}
		sort.Strings(chosen)
		out[date] = chosen
	}
	return out
}

// slotGrid lists every slot start from 09:00 through 17:00 inclusive.
func slotGrid() []string {
	var grid []string
	for m := startHour * 60; m <= endHour*60; m += slotMinutes {
		grid = append(grid, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return grid
}
