package wire

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"regexp"
	"strconv"
	"strings"
)

type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

const (
	attrPrefix = "@"
	textKey    = "#text"
	rawKey     = "raw"
)

// Document is a carrier response turned into a plain value graph: maps,
// ordered []any sequences and string leaves.
type Document struct {
	Format   Format
	RootName string
	Root     map[string]any
	Raw      []byte
	// Degraded is set when the payload could not be parsed; Root then holds
	// the raw text under "raw".
	Degraded bool
}

var (
	xmlErrorPattern  = regexp.MustCompile(`<error>\s*([^<\s]+)\s*</error>`)
	xmlDetailPattern = regexp.MustCompile(`<deta(?:i)?l>\s*([^<]*?)\s*</deta(?:i)?l>`)
	jsonErrorPattern = regexp.MustCompile(`"error"\s*:\s*"([^"]+)"`)
)

// Decode parses a carrier payload. The only error it returns is a
// *WireError; malformed payloads produce a degraded Document instead.
func Decode(raw []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(raw)

	var (
		doc *Document
		err error
	)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		doc, err = decodeJSON(trimmed)
	} else {
		doc, err = decodeXML(trimmed)
	}

	if err != nil {
		if we := scanError(trimmed); we != nil {
			return nil, we
		}
		return &Document{Format: guessFormat(trimmed), Root: map[string]any{rawKey: string(raw)}, Raw: raw, Degraded: true}, nil
	}
	doc.Raw = raw

	if we := embeddedError(doc); we != nil {
		return nil, we
	}
	return doc, nil
}

func guessFormat(b []byte) Format {
	if len(b) > 0 && (b[0] == '{' || b[0] == '[') {
		return FormatJSON
	}
	return FormatXML
}

// embeddedError finds an error code either in an <error> child of the root
// or in a document whose root element is <error> itself.
func embeddedError(doc *Document) *WireError {
	root := doc.Root
	code, ok := Scalar(root["error"])
	if !ok && doc.RootName == "error" {
		code, ok = Scalar(root)
	}
	if !ok || strings.TrimSpace(code) == "" {
		return nil
	}
	detail, _ := Scalar(firstOf(root, "detal", "detail", attrPrefix+"detail"))
	return Classify(strings.TrimSpace(code), strings.TrimSpace(detail))
}

// scanError looks for an error code in a payload that failed to parse.
func scanError(b []byte) *WireError {
	for _, p := range []*regexp.Regexp{xmlErrorPattern, jsonErrorPattern} {
		if m := p.FindSubmatch(b); m != nil {
			detail := ""
			if d := xmlDetailPattern.FindSubmatch(b); d != nil {
				detail = string(d[1])
			}
			return Classify(string(m[1]), detail)
		}
	}
	return nil
}

func decodeJSON(b []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	root, ok := v.(map[string]any)
	if !ok {
		root = map[string]any{textKey: v}
	}
	return &Document{Format: FormatJSON, Root: root}, nil
}

type xmlNode struct {
	name     string
	attrs    []xml.Attr
	children []*xmlNode
	text     strings.Builder
}

func decodeXML(b []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(b))
	dec.Strict = false

	var (
		stack []*xmlNode
		root  *xmlNode
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local, attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, &ParseError{Reason: "unbalanced closing tag " + t.Name.Local}
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil || len(stack) != 0 {
		return nil, &ParseError{Reason: "no complete root element"}
	}

	v := root.value()
	m, ok := v.(map[string]any)
	if !ok {
		m = map[string]any{textKey: v}
	}
	return &Document{Format: FormatXML, RootName: root.name, Root: m}, nil
}

// value converts a node: leaf text becomes a string, attributes go under
// "@name", and repeated siblings become an ordered []any.
func (n *xmlNode) value() any {
	text := strings.TrimSpace(n.text.String())
	if len(n.children) == 0 && len(n.attrs) == 0 {
		return text
	}

	m := make(map[string]any, len(n.attrs)+len(n.children))
	for _, a := range n.attrs {
		m[attrPrefix+a.Name.Local] = a.Value
	}
	for _, c := range n.children {
		v := c.value()
		switch existing := m[c.name].(type) {
		case nil:
			m[c.name] = v
		case []any:
			// element values are never sequences, so this one came from siblings
			m[c.name] = append(existing, v)
		default:
			m[c.name] = []any{existing, v}
		}
	}
	if text != "" {
		m[textKey] = text
	}
	return m
}

// Scalar reads a leaf value as a string.
func Scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]any:
		if s, ok := t[textKey].(string); ok {
			return s, true
		}
	}
	return "", false
}

// List normalizes a value that may be a single item or a sequence.
func List(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// Children returns the items under a container: either the container is
// itself a sequence (JSON) or it wraps repeated elements named item (XML).
func Children(v any, item string) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		if inner, ok := t[item]; ok {
			return List(inner)
		}
	}
	return nil
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func scalarOf(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := Scalar(m[k]); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
