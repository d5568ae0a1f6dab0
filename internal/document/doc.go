// Package document extracts plain text from exam documents.
//
// TextLayer reads the embedded text of typed PDF, DOCX and TXT files. OCR
// handles scanned or handwritten submissions by rendering PDF pages to images
// with a PageRenderer and reading each image with a Recognizer.
package document
