/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Verify lexes generated CSS and checks that braces balance, no bad tokens
// appear, exactly blocks rule blocks are opened, and exactly declarations
// custom properties are declared inside them.
func Verify(content []byte, blocks, declarations int) error {
	lexer := css.NewLexer(parse.NewInputString(string(content)))

	depth := 0
	opened := 0
	found := 0
	pendingName := false
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("lexing: %w", err)
			}
			if depth != 0 {
				return fmt.Errorf("unbalanced braces: %d left open", depth)
			}
			if opened != blocks {
				return fmt.Errorf("expected %d rule blocks, found %d", blocks, opened)
			}
			if found != declarations {
				return fmt.Errorf("expected %d custom properties, found %d", declarations, found)
			}
			return nil
		case css.LeftBraceToken:
			depth++
			opened++
		case css.RightBraceToken:
			depth--
			if depth < 0 {
				return fmt.Errorf("unexpected '}'")
			}
		case css.BadStringToken, css.BadURLToken:
			return fmt.Errorf("malformed value %q", text)
		case css.CustomPropertyNameToken:
			pendingName = depth == 1
			continue
		case css.IdentToken:
			pendingName = depth == 1 && strings.HasPrefix(string(text), "--")
			continue
		case css.ColonToken:
			if pendingName {
				found++
			}
		case css.WhitespaceToken:
			continue
		}
		pendingName = false
	}
}
