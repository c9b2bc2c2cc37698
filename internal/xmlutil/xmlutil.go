// Package xmlutil has helpers for scanning XML web service responses with
// an encoding/xml token stream.
package xmlutil

import (
	"encoding/xml"
	"strings"
)

// ConsumeCurrentElement skips tokens until the element whose start tag was
// just read is closed, or the input ends.
func ConsumeCurrentElement(dec *xml.Decoder) {
	level := 1
	for level != 0 {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		switch tok.(type) {
		case xml.StartElement:
			level++
		case xml.EndElement:
			level--
		}
	}
}

// ParseUntilElement advances to the next start element with the given local
// name. It reports false when the input ends first.
func ParseUntilElement(dec *xml.Decoder, name string) (xml.StartElement, bool) {
	return parseUntil(dec, func(local string) bool { return local == name })
}

// ParseUntilElementCI is ParseUntilElement with a case-insensitive name match
func ParseUntilElementCI(dec *xml.Decoder, name string) (xml.StartElement, bool) {
	return parseUntil(dec, func(local string) bool { return strings.EqualFold(local, name) })
}

func parseUntil(dec *xml.Decoder, match func(string) bool) (xml.StartElement, bool) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, false
		}
		if se, ok := tok.(xml.StartElement); ok && match(se.Name.Local) {
			return se, true
		}
	}
}
