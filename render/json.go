package render

import (
	"bytes"
	"encoding/json"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rustyast/rustyast/syntax"
)

// JSON renders root as a JSON document. Every node becomes an object with the
// keys "kind", "fields" and "children" in that order; fields keep their
// schema order. Int and Float values are JSON numbers, Bool values are JSON
// booleans and all other values are strings, None being the placeholder
// used by the text renderer. The output is
// indented unless Compact is set and always ends with a newline.
func JSON(root *syntax.Node, opts ...Option) (string, error) {
	o := NewOptions(opts...)
	if err := o.Validate(); err != nil {
		return "", err
	}
	return renderJSON(root, o)
}

type object = orderedmap.OrderedMap[string, any]

type jsonFrame struct {
	obj      *object
	children []any
}

// jsonBuilder assembles the document from traversal events: Enter opens an
// object and Exit attaches its finished children.
type jsonBuilder struct {
	stack []*jsonFrame
	root  *object
}

func (b *jsonBuilder) enter(n *syntax.Node, _ int) {
	fields := orderedmap.New[string, any]()
	for _, f := range n.Fields() {
		fields.Set(f.Name, jsonValue(f.Value))
	}
	obj := orderedmap.New[string, any]()
	obj.Set("kind", n.Label())
	obj.Set("fields", fields)
	obj.Set("children", []any{})

	if len(b.stack) > 0 {
		parent := b.stack[len(b.stack)-1]
		parent.children = append(parent.children, obj)
	} else {
		b.root = obj
	}
	b.stack = append(b.stack, &jsonFrame{obj: obj, children: make([]any, 0, n.NumChildren())})
}

func (b *jsonBuilder) exit(*syntax.Node, int) {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	top.obj.Set("children", top.children)
}

func jsonValue(v syntax.Value) any {
	switch v.Kind() {
	case syntax.IntValue, syntax.FloatValue:
		return json.Number(v.String())
	case syntax.BoolValue:
		return v.String() == "true"
	default:
		return v.String()
	}
}

func renderJSON(root *syntax.Node, o Options) (string, error) {
	b := &jsonBuilder{}
	syntax.Walk(root, syntax.HandlerFuncs{EnterFunc: b.enter, ExitFunc: b.exit})
	data, err := json.Marshal(b.root)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if o.Compact {
		if err := json.Compact(&out, data); err != nil {
			return "", err
		}
	} else if err := json.Indent(&out, data, "", strings.Repeat(" ", o.Indent)); err != nil {
		return "", err
	}
	out.WriteByte('\n')
	return out.String(), nil
}
