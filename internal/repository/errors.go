// Package repository provides data access for the reservation system.  The
// domain records (reservations, locations, tables, waiters) live in Redis as
// JSON values under typed key prefixes; user accounts and refresh tokens
// live in MySQL.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the normalized email is
// already registered.  Handlers translate it into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
