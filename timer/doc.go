// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package timer provides the deadline-dispatch engine with recyclable timer
// ids and the named scheduler facade built on top of it.
package timer
