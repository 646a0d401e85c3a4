// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

package xgbjson

import (
	"fmt"
	"strconv"

	"github.com/creachadair/jtree"
	"github.com/treeloom/xgbjson/model"
)

// maxDepth bounds the delegation stack, and with it the nesting depth of the
// input document. A valid model document nests a dozen levels at most, so
// the bound only trips on adversarial input.
const maxDepth = 256

// A delegate adapts the event stream of a jtree.Stream onto a push-down
// stack of schema states. Every event is forwarded to the state on top of
// the stack; states push children on nested-structure entry and are popped
// when their End event reports done.
//
// The delegate decodes raw tokens into typed events before forwarding:
// integer tokens become Int or Uint by sign, number tokens become Double,
// and string tokens and member keys are unquoted. It also counts the members
// of each open object and the elements of each open array, since the schema
// states need those counts at close.
//
// The delegate is the sole owner of the model under construction until
// Result hands it over.
type delegate struct {
	stack    []state
	frames   []frame
	out      *model.Model
	complete bool
}

// A frame counts the members or elements of one open object or array.
type frame struct {
	array bool
	n     int
}

func newDelegate() *delegate {
	d := &delegate{out: &model.Model{NumOutputGroup: 1, PredTransform: model.Identity}}
	d.stack = []state{&rootState{out: d.out}}
	return d
}

// Result hands over the completed model. It reports ErrIncomplete if the
// document has not been fully parsed, and can succeed at most once.
func (d *delegate) Result() (*model.Model, error) {
	if !d.complete || d.out == nil {
		return nil, ErrIncomplete
	}
	m := d.out
	d.out = nil
	return m, nil
}

// popDone removes the finished top state. The document is complete when the
// last schema state above the root has been popped.
func (d *delegate) popDone() {
	d.pop()
	if len(d.stack) == 1 {
		d.complete = true
	}
}

func (d *delegate) top() state { return d.stack[len(d.stack)-1] }

func (d *delegate) push(s state) error {
	if len(d.stack) >= maxDepth {
		return fmt.Errorf("input exceeds %d nesting levels", maxDepth)
	}
	d.stack = append(d.stack, s)
	return nil
}

func (d *delegate) pop() { d.stack = d.stack[:len(d.stack)-1] }

// bumpElem counts a value beginning directly inside an array. Values inside
// objects are counted per member by BeginMember instead.
func (d *delegate) bumpElem() {
	if n := len(d.frames); n > 0 && d.frames[n-1].array {
		d.frames[n-1].n++
	}
}

func (d *delegate) popFrame() int {
	n := d.frames[len(d.frames)-1].n
	d.frames = d.frames[:len(d.frames)-1]
	return n
}

// BeginObject implements part of the jtree.Handler interface.
func (d *delegate) BeginObject(loc jtree.Anchor) error {
	d.bumpElem()
	child, err := d.top().StartObject()
	if err != nil {
		return err
	}
	if err := d.push(child); err != nil {
		return err
	}
	d.frames = append(d.frames, frame{})
	return nil
}

// EndObject implements part of the jtree.Handler interface.
func (d *delegate) EndObject(loc jtree.Anchor) error {
	done, err := d.top().EndObject(d.popFrame())
	if err != nil {
		return err
	}
	if done {
		d.popDone()
	}
	return nil
}

// BeginArray implements part of the jtree.Handler interface.
func (d *delegate) BeginArray(loc jtree.Anchor) error {
	d.bumpElem()
	child, err := d.top().StartArray()
	if err != nil {
		return err
	}
	if err := d.push(child); err != nil {
		return err
	}
	d.frames = append(d.frames, frame{array: true})
	return nil
}

// EndArray implements part of the jtree.Handler interface.
func (d *delegate) EndArray(loc jtree.Anchor) error {
	done, err := d.top().EndArray(d.popFrame())
	if err != nil {
		return err
	}
	if done {
		d.popDone()
	}
	return nil
}

// BeginMember implements part of the jtree.Handler interface.
func (d *delegate) BeginMember(loc jtree.Anchor) error {
	key, err := jtree.Unquote(loc.Text())
	if err != nil {
		return fmt.Errorf("invalid member key: %w", err)
	}
	d.frames[len(d.frames)-1].n++
	return d.top().Key(string(key))
}

// EndMember implements part of the jtree.Handler interface.
func (d *delegate) EndMember(loc jtree.Anchor) error { return nil }

// Value implements part of the jtree.Handler interface.
func (d *delegate) Value(loc jtree.Anchor) error {
	d.bumpElem()
	cur := d.top()
	switch tok := loc.Token(); tok {
	case jtree.String:
		text, err := jtree.Unquote(loc.Text())
		if err != nil {
			return fmt.Errorf("invalid string value: %w", err)
		}
		return cur.String(string(text))

	case jtree.Integer:
		text := string(loc.Text())
		if len(text) != 0 && text[0] == '-' {
			v, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer %q: %w", text, err)
			}
			return cur.Int(v)
		}
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", text, err)
		}
		return cur.Uint(v)

	case jtree.Number:
		v, err := strconv.ParseFloat(string(loc.Text()), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", string(loc.Text()), err)
		}
		return cur.Double(v)

	case jtree.True, jtree.False:
		return cur.Bool(tok == jtree.True)

	case jtree.Null:
		return cur.Null()

	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
}

// EndOfInput implements part of the jtree.Handler interface.
func (d *delegate) EndOfInput(loc jtree.Anchor) {}
