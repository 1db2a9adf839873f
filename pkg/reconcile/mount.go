package reconcile

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Mount creates a detached host subtree for v. It never returns nil: empty
// and unrecognized nodes mount as empty text leaves, and a fragment mounts
// as a host fragment whose children move into the parent on append.
func (r *Reconciler) Mount(v *vdom.VNode) host.Node {
	if v == nil {
		return r.text("")
	}
	switch v.Kind {
	case vdom.KindEmpty:
		return r.text("")
	case vdom.KindText:
		return r.text(v.Text)
	case vdom.KindFragment:
		frag := r.doc.CreateFragment()
		for _, c := range v.Children {
			frag.AppendChild(r.Mount(c))
		}
		return frag
	case vdom.KindElement:
		v = r.flatElement(v)
		el := r.doc.CreateElement(v.Tag)
		r.stats.Mounted++
		r.Attributes(el, v.Props, nil)
		for _, c := range v.Children {
			el.AppendChild(r.Mount(c))
		}
		el.SetBackref(v)
		return el
	case vdom.KindComponent:
		return r.Mount(r.resolve(v))
	default:
		r.report(errors.New("V001").WithDetailf("node kind %d", v.Kind))
		return r.text("")
	}
}

func (r *Reconciler) text(s string) host.Node {
	r.stats.Mounted++
	return r.doc.CreateText(s)
}
