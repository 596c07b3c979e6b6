package mathutil

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

// Vec3From copies the first three values of s, or returns def if s is not
// exactly three long.
func Vec3From(s []float64, def Vec3) Vec3 {
	if len(s) != 3 {
		return def
	}
	return Vec3{s[0], s[1], s[2]}
}
