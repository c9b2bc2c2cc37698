// Package feed reads the items of RSS podcast feeds.
package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ytget/playerutil/internal/format"
	"github.com/ytget/playerutil/internal/textutil"
	"github.com/ytget/playerutil/internal/xmlutil"
)

// RSS element names
const (
	ItemElement      = "item"
	TitleElement     = "title"
	PubDateElement   = "pubDate"
	EnclosureElement = "enclosure"
	LinkElement      = "link"
	URLAttr          = "url"
)

// Item is one feed entry. Published is zero when the date is missing or
// not an RFC 822 date.
type Item struct {
	Title     string
	Link      string
	Enclosure string
	Published time.Time
}

// ParseItems returns the items of the RSS document read from r. Titles are
// entity-decoded a second time since many feeds escape them twice.
func ParseItems(r io.Reader) ([]Item, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var items []Item
	for {
		if _, ok := xmlutil.ParseUntilElementCI(dec, ItemElement); !ok {
			break
		}
		item, err := parseItem(dec)
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItem(dec *xml.Decoder) (Item, error) {
	var item Item
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return item, fmt.Errorf("unexpected end of feed in %s", ItemElement)
		}
		if err != nil {
			return item, fmt.Errorf("failed to read %s: %w", ItemElement, err)
		}

		switch t := tok.(type) {
		case xml.EndElement:
			return item, nil
		case xml.StartElement:
			switch {
			case strings.EqualFold(t.Name.Local, TitleElement) && t.Name.Space == "":
				item.Title = textutil.DecodeHTMLEntities(readText(dec))
			case strings.EqualFold(t.Name.Local, LinkElement) && t.Name.Space == "":
				item.Link = readText(dec)
			case strings.EqualFold(t.Name.Local, PubDateElement):
				if published, ok := format.ParseRFC822DateTime(readText(dec)); ok {
					item.Published = published
				}
			case strings.EqualFold(t.Name.Local, EnclosureElement):
				for _, attr := range t.Attr {
					if attr.Name.Local == URLAttr {
						item.Enclosure = attr.Value
					}
				}
				xmlutil.ConsumeCurrentElement(dec)
			default:
				xmlutil.ConsumeCurrentElement(dec)
			}
		}
	}
}

// readText returns the character data of the current element and consumes
// its end tag
func readText(dec *xml.Decoder) string {
	var sb strings.Builder
	level := 1
	for level != 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			level++
		case xml.EndElement:
			level--
		}
	}
	return strings.TrimSpace(sb.String())
}
