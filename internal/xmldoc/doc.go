// Package xmldoc is the XML engine used by the manifest package. It turns
// text into a document tree and back, and offers read-only XPath lookup.
//
// Malformed markup, unclosed elements, text without a root element and a
// second top-level element are rejected. Anything else xmlquery accepts
// is accepted. The document structure itself is otherwise
// opaque to callers that only load and hand it around.
//
//	doc, err := xmldoc.Parse(text)
//	if err != nil {
//	    return err
//	}
//	id, _ := doc.Text("/*/id")
//	fmt.Println(xmldoc.Serialize(doc))
package xmldoc
