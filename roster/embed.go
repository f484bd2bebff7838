// Package roster embeds the default character roster for compile-time
// inclusion. Each JSON file defines one series: its characters, detection
// weights, context hints, and alias variants grouped by tier.
//
// Usage:
//
//	db.LoadFS(roster.FS, "v1")
//
// A user-supplied roster file (chara --roster path) replaces this default.
package roster

import "embed"

//go:embed v1/*.json
var FS embed.FS
