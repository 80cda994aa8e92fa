package models

// Metadata is the JSON sidecar record paired with one image asset.
//
// Trash, Pick and Rating are deliberately untyped. Sidecars written by the
// previous generation of this tool backfill missing values with "" rather
// than a typed default, and existing trees must keep round-tripping
// unchanged, so these fields carry whatever JSON value is on disk (bool,
// number, null or ""). Use the truthiness helpers instead of type-asserting.
type Metadata struct {
	Filename string `json:"filename"`
	Trash    any    `json:"trash"`
	Pick     any    `json:"pick"`
	Rating   any    `json:"rating"`
	Notes    string `json:"notes"`
	Prompt   string `json:"prompt"`
}

// Trashed reports whether the sidecar marks the asset as trashed.
// Backfilled "" values count as false.
func (m Metadata) Trashed() bool { return truthy(m.Trash) }

// Picked reports whether the sidecar marks the asset as picked.
// Backfilled "" values count as false.
func (m Metadata) Picked() bool { return truthy(m.Pick) }

func truthy(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// Patch is the set of sidecar fields a lifecycle transition overwrites.
// Nil pointers leave the corresponding field untouched.
type Patch struct {
	Trash  *bool
	Pick   *bool
	Rating *int
}

// Apply returns a copy of m with the patch's non-nil fields overwritten.
// Fields the patch does not name are preserved verbatim.
func (m Metadata) Apply(p Patch) Metadata {
	if p.Trash != nil {
		m.Trash = *p.Trash
	}
	if p.Pick != nil {
		m.Pick = *p.Pick
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	return m
}
