// Package cff implements support for reading and subsetting CFF fonts.
//
// CFF fonts are typically found embedded in OpenType font files.
// They are not usually used as stand-alone font files.
package cff
