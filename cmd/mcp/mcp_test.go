/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mcp

import (
	"encoding/json"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/gavanim/cmd/themes"
	"bennypowers.dev/gavanim/testutil"
)

func connect(t *testing.T, fixture string) *sdk.ClientSession {
	t.Helper()
	mfs := testutil.NewMemFS(t, map[string]string{
		"/project/tokens/selected-tokens.json": string(testutil.LoadFixtureFile(t, fixture)),
	})
	serverTransport, clientTransport := sdk.NewInMemoryTransports()

	serverSession, err := NewServer("/project", mfs).Connect(t.Context(), serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdk.NewClient(&sdk.Implementation{Name: "test"}, nil)
	session, err := client.Connect(t.Context(), clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func call[T any](t *testing.T, session *sdk.ClientSession, name string, args map[string]any) (T, *sdk.CallToolResult) {
	t.Helper()
	var out T
	res, err := session.CallTool(t.Context(), &sdk.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	if res.IsError {
		return out, res
	}
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out))
	return out, res
}

func TestTools(t *testing.T) {
	session := connect(t, "fixtures/selected/tokens.json")

	tools, err := session.ListTools(t.Context(), nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_themes", "build_theme", "validate"}, names)
}

func TestListThemes(t *testing.T) {
	session := connect(t, "fixtures/selected/tokens.json")

	listing, _ := call[themes.Listing](t, session, "list_themes", map[string]any{})
	assert.Equal(t, []string{"apple", "banana"}, listing.Brands)
	assert.Equal(t, []string{"light", "dark"}, listing.Modes)
	require.Len(t, listing.Themes, 4)
	assert.Equal(t, "banana/json/dark.json", listing.Themes[3].JSON)
}

func TestBuildTheme(t *testing.T) {
	session := connect(t, "fixtures/brands/tokens.json")

	got, _ := call[BuildResult](t, session, "build_theme", map[string]any{"brand": "apple", "mode": "dark"})
	assert.Equal(t, "apple/dark", got.Theme)
	require.Len(t, got.Outputs, 2)
	assert.Equal(t, "css", got.Outputs[0].Format)
	assert.Equal(t, "apple/css/dark.css", got.Outputs[0].Filename)
	assert.Contains(t, got.Outputs[0].Content, "--color_primary: #111111;")
	assert.Equal(t, "apple/json/dark.json", got.Outputs[1].Filename)
	assert.Contains(t, got.Outputs[1].Content, `"color-primary": "#111111"`)
}

func TestBuildTheme_UnknownBrand(t *testing.T) {
	session := connect(t, "fixtures/brands/tokens.json")

	_, res := call[BuildResult](t, session, "build_theme", map[string]any{"brand": "cherry"})
	require.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `unknown brand "cherry"`)
}

func TestValidate(t *testing.T) {
	session := connect(t, "fixtures/brands/tokens.json")

	got, _ := call[ValidateResult](t, session, "validate", map[string]any{})
	assert.True(t, got.OK)
	assert.Equal(t, 1, got.Total)
	assert.Empty(t, got.Errors)
	assert.Len(t, got.Warnings, 2)
}
