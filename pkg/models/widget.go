package models

import (
	"encoding/json"
	"strings"
)

// WidgetType selects how a custom widget renders its content.
type WidgetType string

const (
	WidgetURL      WidgetType = "url"
	WidgetHTML     WidgetType = "html"
	WidgetNotes    WidgetType = "notes"
	WidgetKeyStats WidgetType = "key_stats"
)

// Valid reports whether t is a known widget type.
func (t WidgetType) Valid() bool {
	switch t {
	case WidgetURL, WidgetHTML, WidgetNotes, WidgetKeyStats:
		return true
	}
	return false
}

// KeyStatOptions are the dashboard selectors a key_stats widget may list in
// its content, in display order.
var KeyStatOptions = []string{
	"totalListings",
	"totalValue",
	"avgPrice",
	"expiredCount",
	"fsboCount",
	"preForeclosureCount",
	"hotLeadsCount",
	"warmLeadsCount",
	"coldLeadsCount",
	"favoritesCount",
	"activeTasksCount",
	"completedTasksCount",
}

// ValidKeyStat reports whether key names a known dashboard selector.
func ValidKeyStat(key string) bool {
	for _, k := range KeyStatOptions {
		if k == key {
			return true
		}
	}
	return false
}

// WidgetContent holds either free text (url, html and notes widgets) or an
// ordered list of stat selector keys (key_stats widgets). It marshals as a
// JSON string or a JSON array to stay compatible with stored overlays.
type WidgetContent struct {
	Text  string
	Lines []string
}

func (c WidgetContent) MarshalJSON() ([]byte, error) {
	if c.Lines != nil {
		return json.Marshal(c.Lines)
	}
	return json.Marshal(c.Text)
}

func (c *WidgetContent) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, "[") {
		c.Text = ""
		return json.Unmarshal(data, &c.Lines)
	}
	c.Lines = nil
	return json.Unmarshal(data, &c.Text)
}

// CustomWidget is a user-defined dashboard card.
type CustomWidget struct {
	ID        string        `json:"id"`
	Type      WidgetType    `json:"type"`
	Title     string        `json:"title"`
	Content   WidgetContent `json:"content"`
	Width     string        `json:"width,omitempty"`
	Height    string        `json:"height,omitempty"`
	CreatedAt string        `json:"createdAt"`
}

// WidgetInput carries user-provided data for creating or updating a widget.
type WidgetInput struct {
	Title   string        `json:"title" validate:"required"`
	Type    WidgetType    `json:"type" validate:"required"`
	Content WidgetContent `json:"content"`
	Width   string        `json:"width"`
	Height  string        `json:"height"`
}
