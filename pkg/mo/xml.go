package mo

import (
	"encoding/xml"
)

// MarshalXML encodes the MO as an element named by its class ID, with the
// structural attributes first and the remaining properties in sorted order.
func (m *MO) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{
		Name: xml.Name{Local: m.ClassID},
	}
	if m.DN != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "dn"}, Value: m.DN})
	}
	if m.RN != "" && m.DN == "" {
		// rn is only sent when the full dn is not; the endpoint rejects
		// elements carrying both.
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "rn"}, Value: m.RN})
	}
	if m.Status != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "status"}, Value: m.Status})
	}
	for _, k := range m.propNames() {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: m.Props[k]})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range m.Children {
		if err := e.Encode(child); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML decodes an arbitrary element in to an MO: the element name
// becomes the class ID, attributes become properties, and child elements
// become child MOs.
func (m *MO) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m.ClassID = start.Name.Local
	m.Props = make(Props)
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "dn":
			m.DN = attr.Value
		case "rn":
			m.RN = attr.Value
		case "status":
			m.Status = attr.Value
		default:
			m.Props[attr.Name.Local] = attr.Value
		}
	}
	if m.RN == "" && m.DN != "" {
		if i := lastSlash(m.DN); i >= 0 {
			m.RN = m.DN[i+1:]
		} else {
			m.RN = m.DN
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			child := new(MO)
			if err := child.UnmarshalXML(d, tok); err != nil {
				return err
			}
			if child.DN == "" && child.RN != "" && m.DN != "" {
				child.DN = m.DN + "/" + child.RN
			}
			m.Children = append(m.Children, child)
		case xml.EndElement:
			return nil
		}
	}
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
