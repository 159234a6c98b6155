// Package middleware contains HTTP middleware for the stub catalog server.
//
// # Components
//
//   - Auth: validates the bearer token sent by SDK clients.
//   - RayID: generates a unique Request ID (RayID) for every incoming request,
//     reusing the client's request id header when present, and echoes it back.
package middleware
