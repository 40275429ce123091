// Package container provides a handle over one named LXC container.
//
// A Container delegates lifecycle operations (create, start, stop,
// destroy) to the runtime and layers on network provisioning: subnet
// allocation, lxc-net config generation, and host-side static routes.
//
// Failures surface as two domain error types. *NoAddressError means
// the container has not acquired an address yet; callers poll at
// their own pace. *RunError means a command run in the container
// exited non-zero and carries the command, exit code, and stderr.
package container
