// Package raster holds rendered pages as plain RGB grids and the pixel
// arithmetic used to compare them.
//
// [FromImage] converts whatever the PDF engine renders into an [Image];
// [PixelDiff] measures the distance between two pixels as the sum of the
// absolute differences of their red, green and blue channels.
package raster
