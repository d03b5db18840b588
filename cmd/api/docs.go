// Package main ListingPro API
//
// Property lead management backend. Seed listing catalogue with local overlays
// for favorites, notes, tags, AI lead scores, and valuations.
//
// Schemes: http, https
// Host: localhost:8080
// BasePath: /api/v1
// Version: 0.1.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package main
