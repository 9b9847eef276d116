package fort

import "time"

// DefaultTimeSkipUnit is the span of remaining construction one premium currency unit skips
const DefaultTimeSkipUnit = 12 * time.Minute

// HustleHammerSkipCost is the flat hustle-hammer price of finishing any construction
const HustleHammerSkipCost = 1

// ValidateTimeSkipPayment checks that paymentType can settle an instant completion
func ValidateTimeSkipPayment(paymentType PaymentType) error {
	if paymentType == PaymentTypeHalidomHustleHammer || paymentType.IsPremium() {
		return nil
	}
	return NewPaymentTypeInvalidError(paymentType, "instant completion")
}

// TimeSkipCost prices finishing a construction with remaining time left.
//
// Premium currencies pay one unit per started unit of remaining time (ceiling), with a
// minimum of one while any time remains and zero once the window has elapsed.
// Hustle hammers always cost HustleHammerSkipCost.
func TimeSkipCost(paymentType PaymentType, remaining, unit time.Duration) (int, error) {
	if err := ValidateTimeSkipPayment(paymentType); err != nil {
		return 0, err
	}
	if paymentType == PaymentTypeHalidomHustleHammer {
		return HustleHammerSkipCost, nil
	}

	if unit <= 0 {
		unit = DefaultTimeSkipUnit
	}
	if remaining <= 0 {
		return 0, nil
	}
	units := remaining / unit
	if remaining%unit != 0 {
		units++
	}
	return int(units), nil
}
