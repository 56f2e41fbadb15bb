// Package crop reconstructs standalone portrait images from packed atlas
// surfaces.
//
// For each atlas it composites the RGB texture with its greyscale alpha
// mask into one RGBA surface, then crops every owned sprite out of it,
// un-rotating and padding where the metadata calls for it. Atlases are
// independent units of work and are processed in parallel.
package crop
