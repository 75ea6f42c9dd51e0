// Package ioutils provides file system helpers shared by the pipeline:
// filename sanitizing, directory creation and small file writes, plus
// the ImageService that scales cover art down to an embeddable size.
//
//	name := ioutils.SanitizeFileName(`What: "A/B"?`)
//	cover, err := ioutils.NewImageService().PrepareCover(data, 1000)
package ioutils
