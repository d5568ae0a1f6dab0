// Package domain contains the core grading entities: question/answer pairs
// extracted from documents, the per-question score record, and the grading
// session that aligns a student's answers with the reference answers.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
