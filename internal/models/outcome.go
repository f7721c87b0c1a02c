package models

type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
	ColorGreen Color = "green"
)

type Parity string

const (
	ParityEven Parity = "even"
	ParityOdd  Parity = "odd"
)

// Outcome is the single drawn wheel result every bet in a round is
// evaluated against. Color and parity are derived from the number.
type Outcome struct {
	Number int    `json:"number"`
	Color  Color  `json:"color"`
	Parity Parity `json:"parity"`
}

// European single-zero layout.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func IsRed(number int) bool {
	return redNumbers[number]
}

// OutcomeFromNumber derives color and parity for a wheel number.
// Zero is green and classified odd for payout purposes.
func OutcomeFromNumber(number int) Outcome {
	outcome := Outcome{Number: number}

	switch {
	case number == 0:
		outcome.Color = ColorGreen
	case redNumbers[number]:
		outcome.Color = ColorRed
	default:
		outcome.Color = ColorBlack
	}

	if number != 0 && number%2 == 0 {
		outcome.Parity = ParityEven
	} else {
		outcome.Parity = ParityOdd
	}

	return outcome
}
