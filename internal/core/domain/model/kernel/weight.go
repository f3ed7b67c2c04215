package kernel

import (
	"errors"
	"fmt"

	"magicmover/internal/pkg/errs"
	"magicmover/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrWeightIsNotConstructed is returned by Validate for a zero-value Weight.
var ErrWeightIsNotConstructed = errors.New("Weight must be created via NewWeight, WeightFromFloat, WeightFromString or ZeroWeight")

// Weight is a non-negative cargo mass. It is backed by an exact decimal so that
// a mover's current weight always equals the sum of its items' weights, with no
// binary floating point drift (0.1 + 0.2 == 0.3).
type Weight struct {
	value decimal.Decimal
	guard guard.ConstructorGuard
}

// Weights carry at most MaxWeightScale fractional digits and no exponent
// above maxWeightExponent. Decimals outside that range would be rescaled to
// arbitrarily large integers by the first sum or comparison.
const (
	MaxWeightScale    = 9
	maxWeightExponent = 18
)

// NewWeight validates that value is not negative and within the supported
// precision.
func NewWeight(value decimal.Decimal) (Weight, error) {
	if exp := value.Exponent(); exp < -MaxWeightScale || exp > maxWeightExponent {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("exponent %d is outside [%d, %d]", exp, -MaxWeightScale, maxWeightExponent),
		)
	}
	if value.IsNegative() {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%s is negative", value.String()),
		)
	}
	return Weight{value: value, guard: guard.NewConstructorGuard()}, nil
}

func WeightFromFloat(value float64) (Weight, error) {
	return NewWeight(decimal.NewFromFloat(value))
}

func WeightFromString(value string) (Weight, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", err)
	}
	return NewWeight(d)
}

// ZeroWeight is the weight of an empty mover.
func ZeroWeight() Weight {
	return Weight{value: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// SumWeights adds weights exactly; the sum of no weights is ZeroWeight.
func SumWeights(weights ...Weight) Weight {
	total := ZeroWeight()
	for _, w := range weights {
		total = total.Add(w)
	}
	return total
}

func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}

func (w Weight) Add(other Weight) Weight {
	return Weight{value: w.value.Add(other.value), guard: guard.NewConstructorGuard()}
}

func (w Weight) GreaterThan(other Weight) bool {
	return w.value.GreaterThan(other.value)
}

func (w Weight) IsPositive() bool {
	return w.value.IsPositive()
}

func (w Weight) IsZero() bool {
	return w.value.IsZero()
}

func (w Weight) IsEqual(other Weight) bool {
	return w.value.Equal(other.value)
}

func (w Weight) Decimal() decimal.Decimal {
	return w.value
}

// Float64 is lossy and meant for presentation only.
func (w Weight) Float64() float64 {
	return w.value.InexactFloat64()
}

func (w Weight) String() string {
	return w.value.String()
}
