package extract

import "errors"

var (
	// ErrAnchorNotFound means a marker the layout depends on is missing from the sheet.
	// Column positions below the marker cannot be trusted, so the document must not be processed.
	ErrAnchorNotFound = errors.New("layout anchor not found")
)
