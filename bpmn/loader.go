package bpmn

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	apperrors "github.com/kbukum/flowreport/errors"
)

// DefaultProcessName is used for process elements without a usable name.
const DefaultProcessName = "Unnamed Process"

// Options tunes how a document is loaded.
type Options struct {
	// UnnamedProcess replaces DefaultProcessName when set.
	UnnamedProcess string
}

// Parse reads a whole definition from r. Any failure to read well-formed XML
// is returned as a PARSE_ERROR AppError wrapping the decoder error.
func Parse(r io.Reader) (*Document, error) {
	return ParseWithOptions(r, Options{})
}

// ParseBytes is Parse over an in-memory definition.
func ParseBytes(b []byte) (*Document, error) {
	return ParseWithOptions(bytes.NewReader(b), Options{})
}

// ParseWithOptions is Parse with explicit loader options.
func ParseWithOptions(r io.Reader, opts Options) (*Document, error) {
	xml := etree.NewDocument()
	xml.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := xml.ReadFrom(r); err != nil {
		return nil, apperrors.ParseError(err)
	}
	root, err := documentRoot(xml)
	if err != nil {
		return nil, apperrors.ParseError(err)
	}

	unnamed := opts.UnnamedProcess
	if unnamed == "" {
		unnamed = DefaultProcessName
	}

	doc := &Document{Resources: collectResources(root)}
	walk(root, func(e *etree.Element) {
		if strings.HasSuffix(e.Tag, "process") {
			name := attr(e, "name")
			if name == "" {
				name = unnamed
			}
			doc.Processes = append(doc.Processes, loadProcess(e, name, doc.Resources))
		}
	})
	return doc, nil
}

// documentRoot returns the single root element. A second element or any
// non-whitespace text beside it makes the document not well-formed.
func documentRoot(xml *etree.Document) (*etree.Element, error) {
	var root *etree.Element
	for _, tok := range xml.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, fmt.Errorf("bpmn: junk after document element <%s>", t.FullTag())
			}
			root = t
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, fmt.Errorf("bpmn: text outside the document element")
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("bpmn: document has no root element")
	}
	return root, nil
}

func collectResources(root *etree.Element) map[string]string {
	resources := make(map[string]string)
	walk(root, func(e *etree.Element) {
		if !strings.HasSuffix(e.Tag, "resource") {
			return
		}
		id, name := attr(e, "id"), attr(e, "name")
		if id != "" && name != "" {
			resources[id] = name
		}
	})
	return resources
}

func loadProcess(proc *etree.Element, name string, resources map[string]string) *Model {
	m := newModel(attr(proc, "id"), name, resources)

	// Nested lanes come later in document order, so the innermost lane wins.
	walk(proc, func(lane *etree.Element) {
		if !strings.HasSuffix(lane.Tag, "lane") {
			return
		}
		laneName := attr(lane, "name")
		walk(lane, func(ref *etree.Element) {
			if strings.HasSuffix(ref.Tag, "flowNodeRef") {
				if text := ref.Text(); text != "" {
					m.lanes[strings.TrimSpace(text)] = laneName
				}
			}
		})
	})

	walk(proc, func(e *etree.Element) {
		id := attr(e, "id")
		if id == "" {
			return
		}
		m.tags[id] = e.Tag

		category, ok := categorize(e.Tag)
		if !ok {
			return
		}
		n := &Node{
			ID:          id,
			Name:        attr(e, "name"),
			Category:    category,
			Tag:         e.Tag,
			Description: documentation(e),
		}
		if category == CategoryTask {
			n.Role = explicitRole(e, resources)
		}
		m.addNode(n)
	})

	walk(proc, func(e *etree.Element) {
		if !strings.HasSuffix(e.Tag, "sequenceFlow") {
			return
		}
		src, tgt := attr(e, "sourceRef"), attr(e, "targetRef")
		if src != "" && tgt != "" {
			m.edges = append(m.edges, Edge{Source: src, Target: tgt})
		}
	})

	return m
}

// categorize maps a local tag to a category. The checks are ordered and case
// sensitive; a bare "task" element is not categorized.
func categorize(tag string) (Category, bool) {
	switch {
	case strings.Contains(tag, "Task"):
		return CategoryTask, true
	case strings.Contains(tag, "Gateway"):
		return CategoryGateway, true
	case strings.Contains(tag, "startEvent"):
		return CategoryStart, true
	case strings.Contains(tag, "endEvent"):
		return CategoryEnd, true
	case strings.Contains(tag, "Event"):
		return CategoryEvent, true
	}
	return CategoryUnknown, false
}

// documentation returns the text of the last non-empty direct documentation child.
func documentation(e *etree.Element) string {
	var desc string
	for _, child := range e.ChildElements() {
		if strings.HasSuffix(child.Tag, "documentation") {
			if text := child.Text(); text != "" {
				desc = text
			}
		}
	}
	return desc
}

// explicitRole scans the task subtree for text naming a resource. Values such
// as "ns:Res_1" resolve on the part after the last colon.
func explicitRole(task *etree.Element, resources map[string]string) string {
	var role string
	walkUntil(task, func(e *etree.Element) bool {
		text := e.Text()
		if text == "" {
			return false
		}
		candidate := strings.TrimSpace(text)
		if i := strings.LastIndex(candidate, ":"); i >= 0 {
			candidate = candidate[i+1:]
		}
		if name, ok := resources[candidate]; ok {
			role = name
			return true
		}
		return false
	})
	return role
}

// attr returns the value of an unprefixed attribute.
func attr(e *etree.Element, key string) string {
	for _, a := range e.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value
		}
	}
	return ""
}

// walk visits e and its descendants in document order.
func walk(e *etree.Element, fn func(*etree.Element)) {
	walkUntil(e, func(el *etree.Element) bool {
		fn(el)
		return false
	})
}

// walkUntil is walk that stops as soon as fn returns true.
func walkUntil(e *etree.Element, fn func(*etree.Element) bool) bool {
	if fn(e) {
		return true
	}
	for _, child := range e.ChildElements() {
		if walkUntil(child, fn) {
			return true
		}
	}
	return false
}
