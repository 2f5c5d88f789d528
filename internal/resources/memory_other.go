//go:build !linux

package resources

// AvailableMemoryGB is not implemented off Linux and reports 0, which selects
// the smallest model.
func AvailableMemoryGB() float64 {
	return 0
}
