// Package session provides in-memory session management for Domino Duel.
//
// Manager is thread-safe and stores one service.Session per table. Each
// session owns its own engine, so concurrent games never share state.
// Sessions use 4-character hex IDs looked up case-insensitively, and every
// deal gets a fresh uuid game ID so callers can tell an old game from the
// current one.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// deal again in the same session
//	sess, err = manager.Restart(sess.ID, config)
//
// Sessions live only in memory. Idle ones are dropped by
// CleanupExpiredSessions.
package session
