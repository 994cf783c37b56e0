package domain

import "github.com/matutevip/ginecoschedule-sub001/pkg/types"

// GenerateSlots materializes the ordered candidate start times for a day.
// Generation starts at open and advances by stepMinutes; the last emitted
// start is at or before close minus one step, so no slot starts within one
// step of closing. Whether a longer service actually fits in a given slot is
// the availability checker's concern, not the generator's.
//
// The result is deterministic: identical inputs always produce the identical
// finite sequence.
func GenerateSlots(open, close types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	openMin, err := open.Minutes()
	if err != nil {
		return nil, err
	}
	closeMin, err := close.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)
	for m := openMin; m <= closeMin-stepMinutes; m += stepMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}
