package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrExtraction indicates that the external extraction service failed or
// returned a payload that cannot be turned into a draft transaction.
var ErrExtraction = errors.New("extraction failed")

// ErrTransactionFinalized indicates that a decision was submitted for a
// transaction that already reached a terminal status.
var ErrTransactionFinalized = errors.New("transaction already in a terminal status")
