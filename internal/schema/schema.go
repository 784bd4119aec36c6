// Package schema validates plan documents against the embedded XML Schema.
//
// The validator interprets the subset of XSD the plan schema actually uses:
// nested element declarations with sequence content models, occurrence
// bounds, string-typed leaves, and attribute declarations. Attribute and
// text values are deliberately left to the parser; the schema gates
// structure only, so a document with an unknown status still validates and
// is dropped later during parsing.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/beevik/etree"
)

//go:embed plan.xsd
var planXSD []byte

// Kind classifies a validation failure.
type Kind string

const (
	// SchemaViolation marks a well-formed document that breaks the
	// structural rules of the schema.
	SchemaViolation Kind = "schema_violation"
	// MalformedDocument marks input that is not well-formed XML.
	MalformedDocument Kind = "malformed_document"
	// IOFailure marks a document that could not be read at all.
	IOFailure Kind = "io_failure"
)

// Error is the kind-tagged failure returned by validation.
type Error struct {
	Kind    Kind
	Path    string
	Reasons []string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if len(e.Reasons) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Reasons, "; "))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes the originating cause for errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// IsKind reports whether err is a schema Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var verr *Error
	return errors.As(err, &verr) && verr.Kind == kind
}

// elementDecl is one compiled element declaration. A leaf declaration
// carries text only: no attributes, no child elements.
type elementDecl struct {
	name     string
	min      int
	max      int // -1 means unbounded
	leaf     bool
	attrs    []attrDecl
	children []*elementDecl
}

type attrDecl struct {
	name     string
	required bool
}

// Validator checks parsed documents against a compiled schema.
type Validator struct {
	root *elementDecl
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns the shared validator for the embedded plan schema,
// compiling it on first use.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = Compile(planXSD)
	})
	return defaultValidator, defaultErr
}

// Compile parses an XSD document and builds a validator from it.
func Compile(xsd []byte) (*Validator, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xsd); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "schema" {
		return nil, fmt.Errorf("parse schema: missing xs:schema root")
	}
	var top *elementDecl
	for _, child := range root.ChildElements() {
		if child.Tag != "element" {
			continue
		}
		if top != nil {
			return nil, fmt.Errorf("parse schema: multiple top-level element declarations")
		}
		decl, err := compileElement(child)
		if err != nil {
			return nil, err
		}
		top = decl
	}
	if top == nil {
		return nil, fmt.Errorf("parse schema: no top-level element declaration")
	}
	return &Validator{root: top}, nil
}

func compileElement(el *etree.Element) (*elementDecl, error) {
	name := el.SelectAttrValue("name", "")
	if name == "" {
		return nil, fmt.Errorf("parse schema: element declaration without name")
	}
	min, err := parseOccurs(el.SelectAttrValue("minOccurs", "1"))
	if err != nil {
		return nil, fmt.Errorf("parse schema: element %s: %w", name, err)
	}
	max, err := parseOccurs(el.SelectAttrValue("maxOccurs", "1"))
	if err != nil {
		return nil, fmt.Errorf("parse schema: element %s: %w", name, err)
	}
	decl := &elementDecl{name: name, min: min, max: max}

	complexType := el.SelectElement("complexType")
	if complexType == nil {
		decl.leaf = true
		return decl, nil
	}
	if seq := complexType.SelectElement("sequence"); seq != nil {
		for _, particle := range seq.ChildElements() {
			if particle.Tag != "element" {
				continue
			}
			child, err := compileElement(particle)
			if err != nil {
				return nil, err
			}
			decl.children = append(decl.children, child)
		}
	}
	for _, attr := range complexType.ChildElements() {
		if attr.Tag != "attribute" {
			continue
		}
		attrName := attr.SelectAttrValue("name", "")
		if attrName == "" {
			return nil, fmt.Errorf("parse schema: element %s: attribute declaration without name", name)
		}
		decl.attrs = append(decl.attrs, attrDecl{
			name:     attrName,
			required: attr.SelectAttrValue("use", "") == "required",
		})
	}
	return decl, nil
}

func parseOccurs(s string) (int, error) {
	if s == "unbounded" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid occurrence bound %q", s)
	}
	return n, nil
}

// ValidateFile reads, parses, and validates the document at path. Failures
// come back as a kind-tagged *Error.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Kind: IOFailure, Path: path, Cause: err}
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return &Error{Kind: MalformedDocument, Path: path, Cause: err}
	}
	if err := v.ValidateDocument(doc); err != nil {
		var verr *Error
		if errors.As(err, &verr) {
			verr.Path = path
		}
		return err
	}
	return nil
}

// ValidateDocument checks an already-parsed document against the schema.
// Every violation found is reported, not only the first.
func (v *Validator) ValidateDocument(doc *etree.Document) error {
	root := doc.Root()
	if root == nil {
		return &Error{Kind: MalformedDocument, Reasons: []string{"document has no root element"}}
	}
	if root.Tag != v.root.name {
		return &Error{Kind: SchemaViolation, Reasons: []string{
			fmt.Sprintf("unexpected document element <%s>, want <%s>", root.Tag, v.root.name),
		}}
	}
	var reasons []string
	v.validateElement(root, v.root, "/"+root.Tag, &reasons)
	if len(reasons) > 0 {
		return &Error{Kind: SchemaViolation, Reasons: reasons}
	}
	return nil
}

func (v *Validator) validateElement(el *etree.Element, decl *elementDecl, path string, reasons *[]string) {
	declared := make(map[string]bool, len(decl.attrs))
	for _, attr := range decl.attrs {
		declared[attr.name] = true
		if attr.required && el.SelectAttr(attr.name) == nil {
			*reasons = append(*reasons, fmt.Sprintf("%s: missing required attribute %q", path, attr.name))
		}
	}
	for _, attr := range el.Attr {
		if attr.Space == "xmlns" || attr.Key == "xmlns" {
			continue
		}
		if !declared[attr.Key] {
			*reasons = append(*reasons, fmt.Sprintf("%s: undeclared attribute %q", path, attr.Key))
		}
	}

	if decl.leaf {
		if children := el.ChildElements(); len(children) > 0 {
			*reasons = append(*reasons, fmt.Sprintf("%s: unexpected child element <%s>", path, children[0].Tag))
		}
		return
	}

	// Element-only content: character data between children must be
	// whitespace.
	for _, tok := range el.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			*reasons = append(*reasons, fmt.Sprintf("%s: unexpected character data %q", path, strings.TrimSpace(cd.Data)))
			break
		}
	}

	// Sequence content: consume children in declaration order within the
	// occurrence bounds of each particle.
	children := el.ChildElements()
	idx := 0
	for _, particle := range decl.children {
		count := 0
		for idx < len(children) && children[idx].Tag == particle.name && (particle.max < 0 || count < particle.max) {
			childPath := fmt.Sprintf("%s/%s[%d]", path, particle.name, count+1)
			v.validateElement(children[idx], particle, childPath, reasons)
			idx++
			count++
		}
		if count < particle.min {
			*reasons = append(*reasons, fmt.Sprintf("%s: want at least %d <%s>, found %d", path, particle.min, particle.name, count))
		}
	}
	if idx < len(children) {
		*reasons = append(*reasons, fmt.Sprintf("%s: unexpected element <%s>", path, children[idx].Tag))
	}
}
