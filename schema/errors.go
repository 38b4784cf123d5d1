/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema

import "errors"

// Sentinel errors for token document handling.
var (
	// ErrSourceMissing indicates the token document does not exist.
	ErrSourceMissing = errors.New("token source not found")

	// ErrParse indicates the token document is not valid structured text.
	ErrParse = errors.New("token document could not be parsed")

	// ErrInvalidToken indicates a token does not conform to the document format.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMixedDialects indicates "value" and "$value" leaves were mixed in one document.
	ErrMixedDialects = errors.New("mixed token key dialects detected")

	// ErrDepthExceeded indicates the document nests deeper than the configured limit.
	ErrDepthExceeded = errors.New("token tree exceeds maximum depth")

	// ErrCycle indicates the token tree visited a node twice.
	ErrCycle = errors.New("token tree contains a cycle")

	// ErrCircularReference indicates a circular reference was detected.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrUnresolvedReference indicates a reference could not be resolved.
	ErrUnresolvedReference = errors.New("unresolved token reference")

	// ErrDuplicateDefinition indicates two sources define the same token path.
	ErrDuplicateDefinition = errors.New("duplicate token definition")

	// ErrSerialization indicates a formatter failed to produce output for a theme.
	ErrSerialization = errors.New("serialization failed")
)
