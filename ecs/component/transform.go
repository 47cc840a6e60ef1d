package component

type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// Scale returns the uniform scale factor used for contained-item layout.
// A zero ScaleX means "unscaled".
func (t *Transform) Scale() float64 {
	if t == nil || t.ScaleX == 0 {
		return 1
	}
	return t.ScaleX
}

var TransformComponent = NewComponent[Transform]()
