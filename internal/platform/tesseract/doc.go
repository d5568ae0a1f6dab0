// Package tesseract recognises text in page images with the Tesseract OCR
// engine through gosseract. Building it requires the Tesseract and
// Leptonica development libraries.
package tesseract
