// Package revision compares two revisions of the site configuration.
package revision

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/molbal/cozyui-docs/internal/model"
)

// Kind of a change between revisions.
type Kind string

const (
	Added   Kind = "added"
	Removed Kind = "removed"
	Changed Kind = "changed"
)

// Change is one difference, addressed by the generator key path.
type Change struct {
	Kind Kind
	Path string
	Old  any
	New  any
}

func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("+ %s: %s", c.Path, show(c.New))
	case Removed:
		return fmt.Sprintf("- %s: %s", c.Path, show(c.Old))
	default:
		return fmt.Sprintf("~ %s: %s -> %s", c.Path, show(c.Old), show(c.New))
	}
}

// Diff lists the changes that turn old into new, in document order.
func Diff(old, new model.SiteConfig) []Change {
	var r reporter
	cmp.Equal(old, new, cmp.Reporter(&r))
	return r.changes
}

// Format renders changes one per line.
func Format(changes []Change) string {
	var b strings.Builder
	for _, c := range changes {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

type reporter struct {
	path    cmp.Path
	changes []Change
}

func (r *reporter) PushStep(ps cmp.PathStep) {
	r.path = append(r.path, ps)
}

func (r *reporter) PopStep() {
	r.path = r.path[:len(r.path)-1]
}

func (r *reporter) Report(rs cmp.Result) {
	if rs.Equal() {
		return
	}
	vx, vy := r.path.Last().Values()
	c := Change{Path: keyPath(r.path)}
	switch {
	case !vx.IsValid() || isNil(vx):
		c.Kind, c.New = Added, value(vy)
	case !vy.IsValid() || isNil(vy):
		c.Kind, c.Old = Removed, value(vx)
	default:
		c.Kind, c.Old, c.New = Changed, value(vx), value(vy)
	}
	r.changes = append(r.changes, c)
}

// keyPath renders p with the keys used in configuration files.
func keyPath(p cmp.Path) string {
	var b strings.Builder
	for i, step := range p {
		switch s := step.(type) {
		case cmp.StructField:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(fieldKey(p[i-1].Type(), s))
		case cmp.SliceIndex:
			ix, iy := s.SplitKeys()
			idx := iy
			if idx < 0 {
				idx = ix
			}
			fmt.Fprintf(&b, "[%d]", idx)
		case cmp.MapIndex:
			fmt.Fprintf(&b, "[%v]", s.Key())
		}
	}
	return b.String()
}

// fieldKey returns the yaml key of a struct field, falling back to its name.
func fieldKey(parent reflect.Type, s cmp.StructField) string {
	if parent.Kind() == reflect.Struct && s.Index() < parent.NumField() {
		tag := strings.Split(parent.Field(s.Index()).Tag.Get("yaml"), ",")[0]
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return s.Name()
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func value(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		return v.Elem().Interface()
	}
	return v.Interface()
}

func show(v any) string {
	switch t := v.(type) {
	case nil:
		return "<none>"
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprintf("%+v", t)
	}
}
