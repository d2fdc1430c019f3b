// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package spsc provides the single-producer/single-consumer lock-free ring,
// a misuse-detecting checked variant, and a CPU-pinned consumer loop.
package spsc
