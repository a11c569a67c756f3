package game

// AssetIndex resolves a renderable asset name to an opaque id. The core only
// stores the id and hands it back to the renderer.
type AssetIndex interface {
	AssetID(name string) uint32
}

// NameIndex is an in-memory AssetIndex that assigns ids in first-seen order.
// Id 0 is reserved for "no asset".
type NameIndex struct {
	ids   map[string]uint32
	names []string
}

// NewNameIndex creates an index pre-registered with the given names.
func NewNameIndex(names ...string) *NameIndex {
	ni := &NameIndex{ids: make(map[string]uint32), names: []string{""}}
	for _, n := range names {
		ni.AssetID(n)
	}
	return ni
}

// AssetID returns the id for name, registering it if unseen.
func (ni *NameIndex) AssetID(name string) uint32 {
	if id, ok := ni.ids[name]; ok {
		return id
	}
	id := uint32(len(ni.names)) // #nosec G115 -- asset count is tiny
	ni.ids[name] = id
	ni.names = append(ni.names, name)
	return id
}

// Name is the reverse lookup used by renderers. Unknown ids return "".
func (ni *NameIndex) Name(id uint32) string {
	if int(id) >= len(ni.names) {
		return ""
	}
	return ni.names[id]
}
