package cart

// Stepper is the +/- quantity control of the request flows: steps of one,
// floor 1, ceiling Max. Stepping past either bound leaves the value as is.
type Stepper struct {
	Max int
}

func (s Stepper) CanIncrement(qty int) bool { return qty < s.Max }

func (s Stepper) CanDecrement(qty int) bool { return qty > 1 }

func (s Stepper) Increment(qty int) int {
	if !s.CanIncrement(qty) {
		return s.bound(qty)
	}
	return qty + 1
}

func (s Stepper) Decrement(qty int) int {
	if !s.CanDecrement(qty) {
		return s.bound(qty)
	}
	return qty - 1
}

// bound pulls a value that was already out of range back into [1, Max].
func (s Stepper) bound(qty int) int {
	if qty < 1 {
		return 1
	}
	if s.Max >= 1 && qty > s.Max {
		return s.Max
	}
	return qty
}
