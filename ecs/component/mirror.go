package component

// Mirror flips a statically placed item in 2D.
type Mirror struct {
	FlippedX bool
	FlippedY bool
}

var MirrorComponent = NewComponent[Mirror]()
