// Package errors provides the classified error type used across sitecake.
//
// Every failure that reaches the CLI carries a category (mapped to an exit
// code), a severity and a context map holding details such as the page name:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "failed to read page").
//		WithContext("page", name).
//		Build()
package errors
