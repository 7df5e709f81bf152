package model

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// RevenueStatuses are the statuses whose total price counts as earned.
var RevenueStatuses = []Status{StatusConfirmed, StatusCompleted}

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Transition returns the status a booking moves to. Any valid status may follow any other.
func Transition(from, to Status) (Status, error) {
	if !from.Valid() {
		return from, fmt.Errorf("unknown current status %q", from)
	}

	if !to.Valid() {
		return from, fmt.Errorf("unknown status %q", to)
	}

	return to, nil
}
