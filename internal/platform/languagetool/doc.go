// Package languagetool implements grammar checking against a LanguageTool
// server's HTTP API. The issue count for a text is the number of matches
// the server reports for it.
package languagetool
