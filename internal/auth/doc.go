// Package auth resolves the caller of every API request.
//
// It supports two modes:
//   - "none": no authentication (default); every request acts as the local user
//   - "token": requests carry "Authorization: Bearer <token>", the token of a
//     user created with "tracker user create"
//
// # Configuration
//
//	AUTH_MODE=none   # Default, no auth required
//	AUTH_MODE=token  # Bearer token per user
//
// # Usage
//
//	mw := auth.NewMiddleware(usersRepo, cfg.Auth, defaultUser.ID)
//	router.Use(mw.Handler())
//
// Extract the caller in handlers:
//
//	ownerID := auth.GetUserID(c)
package auth
