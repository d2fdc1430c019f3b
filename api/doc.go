// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package api defines the public contracts of hioload-kit: tasks, timers,
// publish/subscribe, lock-free rings and graceful shutdown, together with the
// structured error types shared by every implementation package.
package api
