package action

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// MenuItem is one entry of a dynamic menu. Template items carry Content;
// link items carry Type ("app" or "file") and Path.
type MenuItem struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	Type    string `json:"type,omitempty"`
	Path    string `json:"path,omitempty"`
}

// MenuRequest asks the UI layer to render a menu at the given pointer
// position. The hook context never constructs UI itself; requests cross
// to the UI thread over a channel.
type MenuRequest struct {
	Items []MenuItem `json:"items"`
	X     int        `json:"x"`
	Y     int        `json:"y"`
}

// parseTemplateItems reads an ordered JSON array of {name, content}.
func parseTemplateItems(payload string) ([]MenuItem, error) {
	return parseMenuItems(payload, func(v gjson.Result) MenuItem {
		return MenuItem{
			Name:    v.Get("name").String(),
			Content: v.Get("content").String(),
		}
	})
}

// parseLinkItems reads an ordered JSON array of {name, type, path}.
func parseLinkItems(payload string) ([]MenuItem, error) {
	return parseMenuItems(payload, func(v gjson.Result) MenuItem {
		return MenuItem{
			Name: v.Get("name").String(),
			Type: v.Get("type").String(),
			Path: v.Get("path").String(),
		}
	})
}

func parseMenuItems(payload string, conv func(gjson.Result) MenuItem) ([]MenuItem, error) {
	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("menu payload is not valid JSON")
	}
	parsed := gjson.Parse(payload)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("menu payload must be a JSON array")
	}

	var items []MenuItem
	for _, v := range parsed.Array() {
		item := conv(v)
		if item.Name == "" {
			return nil, fmt.Errorf("menu item %d has no name", len(items))
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("menu payload has no items")
	}
	return items, nil
}
