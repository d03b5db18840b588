package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshal(t *testing.T) {
	t.Run("Success - plain number", func(t *testing.T) {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(`250000`), &n))
		assert.Equal(t, 250000.0, n.Float())
	})

	t.Run("Success - quoted number", func(t *testing.T) {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(`"3.5"`), &n))
		assert.Equal(t, 3.5, n.Float())
	})

	t.Run("Success - quoted number with spaces", func(t *testing.T) {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(`" 1200 "`), &n))
		assert.Equal(t, 1200, n.Int())
	})

	t.Run("Success - garbage coerces to zero", func(t *testing.T) {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(`"not a price"`), &n))
		assert.Equal(t, 0.0, n.Float())
	})

	t.Run("Success - null coerces to zero", func(t *testing.T) {
		n := Number(7)
		require.NoError(t, json.Unmarshal([]byte(`null`), &n))
		assert.Equal(t, 0.0, n.Float())
	})
}

func TestWidgetContentRoundTrip(t *testing.T) {
	t.Run("Success - notes content as string", func(t *testing.T) {
		w := CustomWidget{ID: "widget_1", Title: "Scratch", Type: WidgetNotes, Content: WidgetContent{Text: "call back Monday"}}
		raw, err := json.Marshal(w)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"content":"call back Monday"`)

		var back CustomWidget
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, "call back Monday", back.Content.Text)
		assert.Nil(t, back.Content.Lines)
	})

	t.Run("Success - key stats content as array", func(t *testing.T) {
		w := CustomWidget{ID: "widget_2", Title: "Pipeline", Type: WidgetKeyStats, Content: WidgetContent{Lines: []string{"totalListings", "avgPrice"}}}
		raw, err := json.Marshal(w)
		require.NoError(t, err)

		var back CustomWidget
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, []string{"totalListings", "avgPrice"}, back.Content.Lines)
	})

	t.Run("Success - optional dimensions omitted when empty", func(t *testing.T) {
		raw, err := json.Marshal(CustomWidget{ID: "widget_3", Title: "Embed", Type: WidgetHTML})
		require.NoError(t, err)
		assert.NotContains(t, string(raw), `"width"`)
		assert.NotContains(t, string(raw), `"height"`)
	})
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, LeadTypeExpired.Valid())
	assert.True(t, LeadTypeFSBO.Valid())
	assert.True(t, LeadTypePreForeclosure.Valid())
	assert.False(t, LeadType("Rental").Valid())

	assert.True(t, ScoreHot.Valid())
	assert.False(t, LeadScoreValue("Lukewarm").Valid())

	assert.True(t, WidgetURL.Valid())
	assert.True(t, WidgetHTML.Valid())
	assert.True(t, WidgetNotes.Valid())
	assert.True(t, WidgetKeyStats.Valid())
	assert.False(t, WidgetType("chart").Valid())

	for _, key := range KeyStatOptions {
		assert.True(t, ValidKeyStat(key), key)
	}
	assert.False(t, ValidKeyStat("bounceRate"))
}
