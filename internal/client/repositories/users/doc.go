// Package users provides the durable store for the user directory.
//
// # Overview
//
// The whole collection is kept in one JSON file as an array of objects, one
// per user. Every save rewrites the file completely (temp file + rename);
// there is no incremental write.
//
// # Schema
//
//	{
//	    "id": 1,
//	    "surname": "Smith",
//	    "name": "Bob",
//	    "login": "bob",
//	    "password": "secret1",
//	    "role": 0,                      // 0 standard, 1 admin
//	    "status": "active",             // or "inactive"
//	    "login_count": 3,
//	    "login_time": "2024-01-01 10:00:00",
//	    "logout_time": null
//	}
//
// Records written by earlier versions may lack status, role, login_count or
// the timestamps; they are defaulted on load. Keys the model does not know
// (e.g. "last_exit") are carried through a load/save cycle unchanged.
//
// # Errors
//
// A missing file loads as an empty collection. An unreadable or undecodable
// file also yields an empty collection, together with an error wrapping
// common.ErrPersistence that callers are expected to log and ignore. Save
// failures wrap common.ErrPersistence and must be surfaced.
package users
