package formplay

import (
	"io/fs"

	vanilla "github.com/goliatone/go-formplay/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and the browser runtime that bridges
// DOM events to a form session, so Go applications can serve them directly.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formplay.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
