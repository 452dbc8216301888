// Package errors provides structured error types for better observability
// and programmatic error handling across the charm.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeSnapInstallFailed,
//	    "failed to install collector snap",
//	    execErr,
//	    map[string]interface{}{
//	        "snap":    "software-inventory-collector",
//	        "channel": "latest/stable",
//	    },
//	)
package errors
