// Package users resolves account IDs to full profiles through the
// batched lookup endpoint and exports them as flat CSV rows.
package users
