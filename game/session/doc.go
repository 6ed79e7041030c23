// Package session keeps robot assembly puzzle sessions in memory and on disk.
//
// Manager is the in-memory store. Each session owns a PuzzleEngine, the
// GridConfig it was built from and the solver runs recorded against it.
// Lookups are case-insensitive and fall back to the persistence layer when
// a session is not loaded yet.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters. Caller supplied IDs may use letters,
// digits, '-' and '_' up to 64 characters; anything else is rejected with
// ErrInvalidSessionID so IDs can never escape the sessions directory.
//
// Persistence:
//
// FilePersistence writes one JSON file per session. The grid config is
// stored inline, which keeps random sessions restorable after a restart.
// Files written without a config are resolved through the config manager.
//
//	persistence, err := session.NewFilePersistence("./sessions", configManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
//
// CleanupExpiredSessions only evicts sessions from memory; their files stay
// on disk and are loaded again on the next access.
package session
