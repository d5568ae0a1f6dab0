// Package grading orchestrates exam grading: it stages uploaded documents,
// extracts their text, parses question/answer pairs, aligns student answers
// with reference answers by position, and scores each pair with the scoring
// engine.
//
// Any failure aborts the whole operation; callers never receive a partial
// list of score records.
package grading
