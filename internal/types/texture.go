// internal/types/texture.go
package types

// TextureItem is one placed texture. The ID is assigned on placement and
// stays stable for the item's whole life; transforms replace the Transform
// field but never the ID. Z-order is positional (slice order in a frame),
// not stored on the item.
type TextureItem struct {
	ID        string
	Source    string // Name of the source handle in the asset catalog
	Transform Transform
	Tint      string // Hex color ("#rrggbb"), empty for no tint
}

// Clone returns a copy of the item. TextureItem has no reference fields
// today, but revision records must hold state that later mutations cannot
// reach, so all snapshotting goes through here.
func (it TextureItem) Clone() TextureItem {
	return it
}
