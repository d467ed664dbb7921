// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate checks request parameters before a handler touches the store.

Every validator returns either a parsed value or an error. A rejection is a
*Error whose Kind tells the handler which status to send:

	ErrInvalid   → 400 (missing or malformed field)
	ErrNotFound  → 404 (survey id does not exist)
	ErrForbidden → 403 (survey has no places left)

Any other error came from the store and should be treated as a 500.

# Integer Strings

RequireIntegerString accepts ASCII digits only. "+1", "-1", "1.5" and ""
are all rejected the same way.

# Required Fields

Required body fields must be present in the models.Params. Params drops
falsy JSON values, so a JSON 0 counts as missing while "0" does not.
*/
package validate
