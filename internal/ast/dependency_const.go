package ast

// ConstDependency is the plain rewrite-template record: replace the byte
// range [Lo, Hi) of the original source with Content. An empty Content
// deletes the range, which is how import/export declarations are erased
// before the runtime import is injected.
type ConstDependency struct {
	Content string
	Lo      uint32
	Hi      uint32
}

func NewConstDependency(lo uint32, hi uint32, content string) *ConstDependency {
	return &ConstDependency{Lo: lo, Hi: hi, Content: content}
}

func (d *ConstDependency) RewriteRange() (uint32, uint32) {
	return d.Lo, d.Hi
}

func (d *ConstDependency) Replacement() string {
	return d.Content
}
