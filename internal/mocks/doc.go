// Package mocks holds function-field test doubles for the grading
// interfaces: scoring capabilities, document extractors, the grading service
// and the JWT service.
//
// Each mock calls its XxxFn field when set and otherwise returns the
// canned values stored on the struct:
//
//	grammar := &mocks.MockGrammarChecker{
//	    CountIssuesFn: func(ctx context.Context, text string) (int, error) {
//	        return 2, nil
//	    },
//	}
package mocks
