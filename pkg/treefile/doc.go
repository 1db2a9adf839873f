// Package treefile decodes tree documents: YAML or JSON files describing a
// raw tree that vdom.Normalize accepts.
//
// Every mapping is a node with either a tag or a component name, optional
// props and optional children. Scalars are text; sequences are fragments:
//
//	tag: div
//	props: {class: counter}
//	children:
//	  - tag: button
//	    props: {onClick: increment}
//	    children: ["+"]
//	  - component: Count
//	  - "plain text"
//
// Component names and event property values are looked up in a Resolver.
// Malformed documents fail with V020, unknown names with V021. Error
// details carry the line number of the offending node.
package treefile
