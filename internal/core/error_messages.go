// Package core provides the catalog model and the view pipeline.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # Catalog Errors (CAT001-CAT099)
//
//	CAT001 - Unknown schema: The catalog file has an unrecognized layout
//	         Action: Provide a "version" mapping or a "standardProducts" list
//	         Patterns: "unknown catalog schema"
//
//	CAT002 - Invalid product: A product record is missing required fields
//	         Action: Ensure every product has an id, a name and a version
//	         Patterns: "invalid product"
//
//	CAT003 - Catalog unavailable: The catalog has not been loaded
//	         Action: Please try again in a few moments
//	         Patterns: "catalog not loaded"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Unsupported format: The requested download format is not available
//	         Action: Download data.csv or data.xlsx
//	         Patterns: "unsupported export format"
//
//	EXP002 - Asset missing: The pre-generated download file was not found
//	         Action: Contact an administrator to publish the export files
//	         Patterns: "static export asset missing"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "unknown catalog schema",
		msg: UserMessage{
			Message: "The catalog file has an unrecognized layout",
			Action:  `Provide a "version" mapping or a "standardProducts" list`,
			Code:    "CAT001",
		},
	},
	{
		pattern: "invalid product",
		msg: UserMessage{
			Message: "A product record is missing required fields",
			Action:  "Ensure every product has an id, a name and a version",
			Code:    "CAT002",
		},
	},
	{
		pattern: "catalog not loaded",
		msg: UserMessage{
			Message: "The catalog has not been loaded",
			Action:  "Please try again in a few moments",
			Code:    "CAT003",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "The requested download format is not available",
			Action:  "Download data.csv or data.xlsx",
			Code:    "EXP001",
		},
	},
	{
		pattern: "static export asset missing",
		msg: UserMessage{
			Message: "The pre-generated download file was not found",
			Action:  "Contact an administrator to publish the export files",
			Code:    "EXP002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-facing message.
// Returns a zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
