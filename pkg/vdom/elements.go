package vdom

// createElement routes builder arguments: Attr, []Attr, EventHandler and
// Props become properties, nil is skipped, and anything else is a child.
func createElement(tag string, args []any) *Desc {
	d := &Desc{Type: tag}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			d.setProp(v.Key, v.Value)

		case []Attr:
			for _, a := range v {
				d.setProp(a.Key, a.Value)
			}

		case EventHandler:
			d.setProp(v.Event, v.Handler)

		case Props:
			for k, val := range v {
				d.setProp(k, val)
			}

		default:
			d.Children = append(d.Children, arg)
		}
	}

	return d
}

func (d *Desc) setProp(key string, value any) {
	if key == "" {
		return
	}
	if d.Props == nil {
		d.Props = make(Props)
	}
	// Repeated class attributes accumulate.
	if key == "class" {
		if prev, ok := d.Props["class"].(string); ok && prev != "" {
			if s, ok := value.(string); ok {
				if s == "" {
					return
				}
				value = prev + " " + s
			}
		}
	}
	d.Props[key] = value
}

// Document structure elements

func Html(args ...any) *Desc  { return createElement("html", args) }
func Head(args ...any) *Desc  { return createElement("head", args) }
func Body(args ...any) *Desc  { return createElement("body", args) }
func Title(args ...any) *Desc { return createElement("title", args) }

// Content sectioning elements

func Header(args ...any) *Desc  { return createElement("header", args) }
func Footer(args ...any) *Desc  { return createElement("footer", args) }
func Main(args ...any) *Desc    { return createElement("main", args) }
func Nav(args ...any) *Desc     { return createElement("nav", args) }
func Section(args ...any) *Desc { return createElement("section", args) }
func Article(args ...any) *Desc { return createElement("article", args) }
func Aside(args ...any) *Desc   { return createElement("aside", args) }
func H1(args ...any) *Desc      { return createElement("h1", args) }
func H2(args ...any) *Desc      { return createElement("h2", args) }
func H3(args ...any) *Desc      { return createElement("h3", args) }

// Text content elements

func Div(args ...any) *Desc        { return createElement("div", args) }
func P(args ...any) *Desc          { return createElement("p", args) }
func Span(args ...any) *Desc       { return createElement("span", args) }
func Pre(args ...any) *Desc        { return createElement("pre", args) }
func Blockquote(args ...any) *Desc { return createElement("blockquote", args) }
func Ul(args ...any) *Desc         { return createElement("ul", args) }
func Ol(args ...any) *Desc         { return createElement("ol", args) }
func Li(args ...any) *Desc         { return createElement("li", args) }
func Hr(args ...any) *Desc         { return createElement("hr", args) }

// Inline text semantics

func A(args ...any) *Desc      { return createElement("a", args) }
func Strong(args ...any) *Desc { return createElement("strong", args) }
func Em(args ...any) *Desc     { return createElement("em", args) }
func I(args ...any) *Desc      { return createElement("i", args) }
func Small(args ...any) *Desc  { return createElement("small", args) }
func Code(args ...any) *Desc   { return createElement("code", args) }
func Br(args ...any) *Desc     { return createElement("br", args) }

// Form elements

func Form(args ...any) *Desc     { return createElement("form", args) }
func Input(args ...any) *Desc    { return createElement("input", args) }
func Textarea(args ...any) *Desc { return createElement("textarea", args) }
func Select(args ...any) *Desc   { return createElement("select", args) }
func Option(args ...any) *Desc   { return createElement("option", args) }
func Button(args ...any) *Desc   { return createElement("button", args) }
func Label(args ...any) *Desc    { return createElement("label", args) }
func Fieldset(args ...any) *Desc { return createElement("fieldset", args) }

// Table elements

func Table(args ...any) *Desc { return createElement("table", args) }
func Thead(args ...any) *Desc { return createElement("thead", args) }
func Tbody(args ...any) *Desc { return createElement("tbody", args) }
func Tr(args ...any) *Desc    { return createElement("tr", args) }
func Th(args ...any) *Desc    { return createElement("th", args) }
func Td(args ...any) *Desc    { return createElement("td", args) }

// Media elements

func Img(args ...any) *Desc { return createElement("img", args) }

// Interactive elements

func Details(args ...any) *Desc { return createElement("details", args) }
func Summary(args ...any) *Desc { return createElement("summary", args) }
func Dialog(args ...any) *Desc  { return createElement("dialog", args) }

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *Desc {
	return createElement(tag, args)
}
