// Package audio handles the on-disk shape of a finished track: ID3
// tagging, display naming and playlist generation.
//
// # Tagging
//
// Tagger writes resolved metadata into an MP3 file:
//
//	tagger := audio.NewTagger(httpClient, 1000)
//	err := tagger.Tag(ctx, path, meta)
//
// Written frames: title, artist, album, genre, year, a comment frame
// carrying the source description, a "Source" comment frame carrying
// the source page URL, and embedded JPEG cover art when available.
//
// # Naming
//
// FileName and Rename produce the "{artist} - {title}.{ext}" display
// name with filesystem-safe characters.
//
// # Playlists
//
// M3U renders a playlist for a playlist job's finished tracks.
package audio
