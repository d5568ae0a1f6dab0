// Package parser turns the raw text of an exam document into ordered
// question/answer pairs.
//
// Two layouts are recognised. A student document is a sequence of
//
//	Q1: What is X? Ans: X is Y.
//
// blocks; a reference document additionally ends each block with a
// comma-separated keyword list:
//
//	Q1: What is X? Ans: X is Y. Keywords: y, x
//
// The markers are matched literally. A question without a "?" before its
// "Ans:" marker is not recognised, and incomplete trailing fragments are
// skipped rather than reported. Parsing never fails: text with no complete
// block yields an empty slice, and callers detect the problem when the
// student and reference counts disagree.
package parser
