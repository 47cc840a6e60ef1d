package component

// Highlight marks an item the player is currently pointing at.
type Highlight struct {
	On bool
}

var HighlightComponent = NewComponent[Highlight]()
