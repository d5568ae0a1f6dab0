// Package api handles incoming HTTP requests for the grader: multipart
// document grading, manual JSON grading and health checks. It validates
// requests, delegates to the grading service, and translates domain errors
// into sanitized JSON error responses.
package api
