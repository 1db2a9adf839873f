// Package vtest provides testing helpers for vtree trees.
//
// A Fixture mounts a tree into an in-memory HTML document, so tests can
// render, fire events and assert on the resulting markup without a
// browser.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    count := 0
//	    view := func() any {
//	        return vdom.Button(vdom.ID("inc"), vdom.OnClick(func() { count++ }), vdom.Textf("%d", count))
//	    }
//	    f := vtest.Mount(t, view())
//	    f.Click("inc")
//	    f.Render(view())
//	    f.ExpectHTML(`<button id="inc">1</button>`)
//	}
//
// # Render Assertions
//
// The Expect helpers take a tree and render it into a fresh document:
//
//	vtest.ExpectContains(t, Greeting("Ada"), "Hello, Ada")
//	vtest.ExpectNotContains(t, Greeting(""), "Hello")
//	vtest.ExpectElement(t, Form(), "button")
//	vtest.ExpectAttribute(t, Form(), "type", "submit")
//
// # Mutations
//
// Every fixture journals host mutations. Drain returns the operations of
// the last render, and ExpectNoCreates fails the test when an update
// created nodes instead of patching them.
package vtest
