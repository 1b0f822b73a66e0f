// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import "io"

const xmlPreamble = `<?xml version="1.0" encoding="ISO-8859-1"?>`

// WriteXML writes an XML rendering of n to w as an element with the given
// label. Scalar fields of an object are written as attributes of its element,
// other fields as child elements named for the field. Array items are written
// as child elements named "i".
//
// Names and text are written without escaping, so the output is well-formed
// only when they contain no XML metacharacters.
func (n *Node) WriteXML(w io.Writer, label string) error {
	_, err := w.Write(n.appendXML(nil, []byte(label)))
	return err
}

// WriteXML writes an XML document whose root element, named "root", renders
// the root of d.
func (d *Doc) WriteXML(w io.Writer) error {
	if d.root == nil {
		return ErrNoRoot
	}
	buf := append([]byte(nil), xmlPreamble...)
	_, err := w.Write(d.root.appendXML(buf, []byte("root")))
	return err
}

func (n *Node) appendXML(buf, label []byte) []byte {
	switch n.kind {
	case Object:
		buf = append(append(buf, '<'), label...)
		fs := n.fieldList()
		var nested int
		for _, f := range fs {
			if !f.value.kind.IsScalar() {
				nested++
				continue
			}
			buf = append(buf, ' ')
			buf = append(buf, f.name...)
			buf = append(buf, `="`...)
			buf = f.value.appendXMLText(buf)
			buf = append(buf, '"')
		}
		if nested == 0 {
			return append(buf, " />"...)
		}
		buf = append(buf, '>')
		for _, f := range fs {
			if !f.value.kind.IsScalar() {
				buf = f.value.appendXML(buf, f.name)
			}
		}
		return closeTag(buf, label)

	case Array:
		buf = openTag(buf, label)
		for v := range n.Items() {
			buf = v.appendXML(buf, []byte("i"))
		}
		return closeTag(buf, label)
	}
	buf = openTag(buf, label)
	buf = n.appendXMLText(buf)
	return closeTag(buf, label)
}

// appendXMLText appends the text of a scalar node. Strings are copied
// verbatim.
func (n *Node) appendXMLText(buf []byte) []byte {
	if n.kind == String {
		return append(buf, n.s...)
	}
	return n.appendScalar(buf)
}

func openTag(buf, label []byte) []byte {
	buf = append(buf, '<')
	buf = append(buf, label...)
	return append(buf, '>')
}

func closeTag(buf, label []byte) []byte {
	buf = append(buf, "</"...)
	buf = append(buf, label...)
	return append(buf, '>')
}
