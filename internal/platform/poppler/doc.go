// Package poppler renders PDF pages to PNG images with poppler's pdftoppm.
package poppler
