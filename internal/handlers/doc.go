// Package handlers provides HTTP request handlers for the vaultview API.
//
// It includes handlers for:
//   - Tree encode, decode and dry-run planning
//   - Frame extraction, batches and contact sheets
//   - Video probing and timestamp planning
//   - Directory and video listings with display names
//   - Frame cache statistics, health checks and version info
package handlers
