// Package preflight inspects screenshots for identifying EXIF metadata before
// they are uploaded.
//
// Phone and camera screenshots often carry GPS coordinates, device serial
// numbers, and author names. The analysis backend only needs the pixels,
// so the operator is warned before those tags leave the machine. The
// inspection never blocks an upload.
package preflight
