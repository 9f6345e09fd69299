package posting

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/UniversalLevi/InstagramAutomation/pkg/core"
)

// node is the intermediate tree shape before flattening.
type node struct {
	elem     core.Element
	children []*node
}

// ParsePageSource parses an Android UI hierarchy XML dump into a flat,
// depth-first list of elements.
func ParsePageSource(xmlData string) ([]core.Element, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlData))

	var roots []*node
	foundHierarchy := false
	var parseElement func() (*node, error)

	parseElement = func() (*node, error) {
		for {
			token, err := decoder.Token()
			if err != nil {
				return nil, err
			}

			switch t := token.(type) {
			case xml.StartElement:
				if t.Name.Local == "hierarchy" {
					foundHierarchy = true
					continue
				}

				n := &node{elem: core.Element{
					ClassName: t.Name.Local,
					Displayed: true,
					Enabled:   true,
				}}

				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "text":
						n.elem.Text = attr.Value
					case "resource-id":
						n.elem.ResourceID = attr.Value
					case "content-desc":
						n.elem.ContentDesc = attr.Value
					case "hint":
						n.elem.HintText = attr.Value
					case "class":
						n.elem.ClassName = attr.Value
					case "bounds":
						n.elem.Bounds = parseBounds(attr.Value)
					case "enabled":
						n.elem.Enabled = attr.Value == "true"
					case "focused":
						n.elem.Focused = attr.Value == "true"
					case "displayed":
						n.elem.Displayed = attr.Value != "false"
					case "clickable":
						n.elem.Clickable = attr.Value == "true"
					}
				}

				for {
					child, err := parseElement()
					if err != nil || child == nil {
						break
					}
					n.children = append(n.children, child)
				}

				return n, nil

			case xml.EndElement:
				return nil, nil
			}
		}
	}

	var parseErr error
	for {
		n, err := parseElement()
		if err != nil {
			if err.Error() != "EOF" {
				parseErr = err
			}
			break
		}
		if n != nil {
			roots = append(roots, n)
		}
	}

	if parseErr != nil && len(roots) == 0 {
		return nil, parseErr
	}
	if !foundHierarchy {
		return nil, fmt.Errorf("invalid page source: no hierarchy element found")
	}

	var flat []core.Element
	for _, r := range roots {
		flat = append(flat, flatten(r, 0)...)
	}
	return flat, nil
}

func flatten(n *node, depth int) []core.Element {
	n.elem.Depth = depth
	out := []core.Element{n.elem}
	for _, c := range n.children {
		out = append(out, flatten(c, depth+1)...)
	}
	return out
}

// parseBounds parses Android bounds format: [x1,y1][x2,y2]
func parseBounds(s string) core.Bounds {
	s = strings.ReplaceAll(s, "][", ",")
	s = strings.Trim(s, "[]")
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return core.Bounds{}
	}
	x1, _ := strconv.Atoi(parts[0])
	y1, _ := strconv.Atoi(parts[1])
	x2, _ := strconv.Atoi(parts[2])
	y2, _ := strconv.Atoi(parts[3])
	return core.Bounds{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
