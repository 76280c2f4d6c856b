package core

// error_messages.go maps technical errors to user-facing messages with
// support codes.
//
// Codes are grouped by category:
//
//	VAL001 invalid date            VAL003 required field missing
//	VAL007 client identity missing VAL008 record failed validation
//	FILE001 file too large         FILE002 unreadable file
//	FILE005 empty file             FILE006 unsupported file type
//	AUTH001 no acting user         KIND001 unknown record kind
//	DB001 duplicate value          DB002 not found
//	DB004 connection refused       DB006 timeout
//	IMP001 import busy             IMP002 request cancelled
//	IMP003 request timed out       RATE001 rate limited
//	EXP001 unknown export format   REQ001 malformed request
//	ERR000 anything else
//
// Sentinel errors are matched with errors.Is first; remaining errors fall
// back to case-insensitive substring patterns, first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	err error
	msg UserMessage
}

// sentinelMessages is checked in order; wrapped chains can match several,
// so the most specific sentinel comes first.
var sentinelMessages = []sentinelMessage{
	{ErrInvalidDate, UserMessage{
		Message: "Invalid date format detected",
		Action:  "Use YYYY-MM-DD, DD/MM/YYYY or 24-Aug",
		Code:    "VAL001",
	}},
	{ErrFieldMissing, UserMessage{
		Message: "Required field is empty",
		Action:  "Ensure all required columns have values",
		Code:    "VAL003",
	}},
	{ErrClientIdentityMissing, UserMessage{
		Message: "Client could not be identified",
		Action:  "Provide the client name, national ID or phone number",
		Code:    "VAL007",
	}},
	{ErrPersistenceValidation, UserMessage{
		Message: "Record failed validation",
		Action:  "Correct the highlighted field and import the row again",
		Code:    "VAL008",
	}},
	{ErrParse, UserMessage{
		Message: "File could not be read",
		Action:  "Upload a CSV or Excel file with a header row and at least one data row",
		Code:    "FILE002",
	}},
	{ErrNoActingUser, UserMessage{
		Message: "No acting user for this import",
		Action:  "Authenticate with an API key or configure a webhook actor",
		Code:    "AUTH001",
	}},
	{ErrUnknownKind, UserMessage{
		Message: "Unknown record type",
		Action:  "Use one of the record types listed by /api/kinds",
		Code:    "KIND001",
	}},
	{ErrDuplicate, UserMessage{
		Message: "A record with this value already exists",
		Action:  "Review your data for duplicate values",
		Code:    "DB001",
	}},
	{ErrNotFound, UserMessage{
		Message: "Record not found",
		Action:  "Verify the identifier is correct",
		Code:    "DB002",
	}},
	{ErrImportBusy, UserMessage{
		Message: "System is busy processing other imports",
		Action:  "Please wait a moment and try again",
		Code:    "IMP001",
	}},
	{ErrUnknownFormat, UserMessage{
		Message: "Unsupported export format",
		Action:  "Use format=json, format=csv or format=excel",
		Code:    "EXP001",
	}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns covers errors that arrive without a sentinel in the chain,
// mostly driver and transport failures.
var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this value already exists",
			Action:  "Review your data for duplicate values",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "IMP002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out before this row was processed",
			Action:  "Import the remaining rows in a smaller file",
			Code:    "IMP003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a file with data rows",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "File type is not supported",
			Action:  "Upload a .csv, .xlsx or .xls file",
			Code:    "FILE006",
		},
	},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request could not be understood",
			Action:  "Check the request parameters and body",
			Code:    "REQ001",
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

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Patterns are checked before sentinels so that specific file problems
// (empty file, unsupported type) win over the generic parse message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	if errors.Is(err, ErrParse) {
		for _, ep := range errorPatterns {
			if strings.HasPrefix(ep.msg.Code, "FILE") && strings.Contains(errStr, ep.pattern) {
				return ep.msg
			}
		}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
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

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
