// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ijson

import "github.com/creachadair/ijson/ast"

// indexMin is the number of members an object must have before duplicate
// keys are found with a map rather than a linear scan.
const indexMin = 8

// A frame is one level of container construction. Frames live in an arena
// indexed by depth and are reused when a container at the same depth is
// opened again.
type frame struct {
	depth   int
	isArray bool

	arr ast.Array  // in-progress value, if isArray
	obj ast.Object // in-progress value, if !isArray

	pos int    // offset of the next array element
	key string // key of the pending object member

	index   map[string]int // member offsets by key, once len(obj) >= indexMin
	indexed bool

	// A comma was consumed and no value has followed it yet.
	needsValue bool
}

// reset prepares f to build a new empty container.
func (f *frame) reset(isArray bool) {
	f.isArray = isArray
	f.arr, f.obj = nil, nil
	f.pos, f.key = 0, ""
	f.needsValue = false
	if f.indexed {
		clear(f.index)
		f.indexed = false
	}
}

// value returns the container built by f, and releases f's reference to it.
func (f *frame) value() ast.Value {
	var v ast.Value
	if f.isArray {
		v = f.arr
		if f.arr == nil {
			v = ast.Array{}
		}
	} else {
		v = f.obj
		if f.obj == nil {
			v = ast.Object{}
		}
	}
	f.arr, f.obj = nil, nil
	return v
}

// add adds v to the container under construction.
func (f *frame) add(v ast.Value) {
	if f.isArray {
		f.arr = append(f.arr, v)
		f.pos++
		return
	}
	if i, ok := f.lookup(f.key); ok {
		f.obj[i].Value = v // a repeated key replaces the earlier value
		return
	}
	f.obj = append(f.obj, ast.Field(f.key, v))
	if f.indexed {
		f.index[f.key] = len(f.obj) - 1
	}
}

// skip records that an array element was discarded.
func (f *frame) skip() {
	if f.isArray {
		f.pos++
	}
}

func (f *frame) lookup(key string) (int, bool) {
	if !f.indexed {
		if len(f.obj) < indexMin {
			for i, m := range f.obj {
				if m.Key == key {
					return i, true
				}
			}
			return 0, false
		}
		if f.index == nil {
			f.index = make(map[string]int, 2*len(f.obj))
		}
		for i, m := range f.obj {
			f.index[m.Key] = i
		}
		f.indexed = true
	}
	i, ok := f.index[key]
	return i, ok
}

// pathElem returns the path element f contributes for the value it is
// about to receive.
func (f *frame) pathElem() any {
	if f.isArray {
		return f.pos
	}
	return f.key
}

// push makes a fresh frame current for a new container, reusing a pooled
// frame at that depth if one exists.
func (p *Parser) push(isArray bool) *frame {
	p.top++
	if p.top == len(p.frames) {
		p.frames = append(p.frames, &frame{depth: p.top})
	}
	p.hwm = max(p.hwm, p.top)
	f := p.frames[p.top]
	f.reset(isArray)
	return f
}

// trimFrames releases pooled frames deeper than the deepest level reached
// since the last call.
func (p *Parser) trimFrames() {
	keep := p.hwm + 1
	clear(p.frames[keep:])
	p.frames = p.frames[:keep]
	p.hwm = p.top
}

// attach adds a completed value to the current container, passing it through
// the callback first if one applies at this depth.
func (p *Parser) attach(v ast.Value) {
	f := p.frames[p.top]
	f.needsValue = false
	if p.callback != nil && f.depth > 0 && f.depth-1 <= p.maxDepth {
		nv, keep := p.callback(v, p.path())
		if !keep {
			f.skip()
			return
		}
		if nv == nil {
			nv = ast.Null
		}
		v = nv
	}
	f.add(v)
}

// path returns the path of the value about to be added to the current frame.
func (p *Parser) path() []any {
	p.pathBuf = p.pathBuf[:0]
	for _, f := range p.frames[1 : p.top+1] {
		p.pathBuf = append(p.pathBuf, f.pathElem())
	}
	return p.pathBuf
}
