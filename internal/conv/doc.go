// Package conv converts sample ordinals to and from the uint32 keys stored in
// roaring bitmaps.
package conv
