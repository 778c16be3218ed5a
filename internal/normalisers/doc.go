// Package normalisers groups the text clean-up stages.
//
//   - sentence: cleans extracted text and splits it into sentences and tokens.
//   - markdown, html: strip markup from source files before they reach sentence.
package normalisers
