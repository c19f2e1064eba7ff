package conv

import (
	"fmt"
	"math"
)

// OrdinalToKey converts a sample ordinal to a bitmap key.
func OrdinalToKey(ordinal int) (uint32, error) {
	if ordinal < 0 {
		return 0, fmt.Errorf("conv: negative ordinal %d", ordinal)
	}
	if uint64(ordinal) > math.MaxUint32 {
		return 0, fmt.Errorf("conv: ordinal %d exceeds bitmap key range", ordinal)
	}
	return uint32(ordinal), nil
}

// KeyToOrdinal converts a bitmap key back to a sample ordinal.
func KeyToOrdinal(key uint32) int {
	return int(key)
}
