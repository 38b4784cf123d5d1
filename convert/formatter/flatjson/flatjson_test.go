/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package flatjson_test

import (
	"encoding/json"
	"testing"
	"time"

	"bennypowers.dev/gavanim/convert/formatter"
	"bennypowers.dev/gavanim/convert/formatter/flatjson"
	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/theme"
	"bennypowers.dev/gavanim/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []token.Resolved{
	{Path: token.Path{"Global", "spacing", "md"}, Value: token.NumberValue("8.50")},
	{Path: token.Path{"Global", "color", "primary"}, Value: token.StringValue("#111111")},
	{Path: token.Path{"Semantics", "flag", "on"}, Value: token.Value{Kind: token.Bool, Text: "true"}},
	{Path: token.Path{"Semantics", "font", "family"}, Value: token.StringValue("\"Fira\" <mono> & co")},
}

func format(t *testing.T) []byte {
	t.Helper()
	out, err := flatjson.New().Format(sample, formatter.Options{
		Naming:      formatter.JSONNaming(),
		Theme:       theme.Theme{Brand: "apple", Mode: "dark"},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	return out
}

func TestFormat(t *testing.T) {
	out := format(t)
	assert.Equal(t, `{
  "meta": {
    "brand": "apple",
    "mode": "dark",
    "generatedAt": "2026-01-02T03:04:05Z"
  },
  "tokens": {
    "color-primary": "#111111",
    "flag-on": true,
    "font-family": "\"Fira\" <mono> & co",
    "spacing-md": 8.50
  }
}
`, string(out))
}

func TestRoundTrip(t *testing.T) {
	out := format(t)

	doc, err := flatjson.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "apple", doc.Meta.Brand)
	assert.Equal(t, "dark", doc.Meta.Mode)
	assert.Equal(t, json.Number("8.50"), doc.Tokens["spacing-md"])
	assert.Equal(t, "#111111", doc.Tokens["color-primary"])
	assert.Equal(t, true, doc.Tokens["flag-on"])
	assert.Len(t, doc.Tokens, len(sample))

	again, err := flatjson.Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestFormat_NoTimestamp(t *testing.T) {
	out, err := flatjson.New().Format(nil, formatter.Options{
		Naming: formatter.JSONNaming(),
		Theme:  theme.Theme{Brand: "x", Mode: "light"},
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"meta\": {\n    \"brand\": \"x\",\n    \"mode\": \"light\"\n  },\n  \"tokens\": {}\n}\n", string(out))
}

func TestFormat_LaterNameWins(t *testing.T) {
	out, err := flatjson.New().Format([]token.Resolved{
		{Path: token.Path{"Global", "color", "a"}, Value: token.StringValue("#000")},
		{Path: token.Path{"Semantics", "color", "a"}, Value: token.StringValue("#fff")},
	}, formatter.Options{Naming: formatter.JSONNaming()})
	require.NoError(t, err)

	doc, err := flatjson.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"color-a": "#fff"}, doc.Tokens)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := flatjson.Decode([]byte(`{"meta":`))
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrParse)
}
