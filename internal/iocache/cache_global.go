package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
)

// payloadTable is the name of the table for payload caching.
const payloadTable = "payload_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager with the payload cache and history stores.
// An empty backend disables the corresponding store.
func InitStores(cacheBackend schema.DatabaseBackend, cacheConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		payload, history, err := openStores(cacheBackend, cacheConnStr, historyBackend, historyConnStr)
		if err != nil {
			initErr = err
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.payload = payload
		Manager.history = history
	})

	return initErr
}

// NewManager builds a standalone manager, independent of the global one.
func NewManager(cacheBackend schema.DatabaseBackend, cacheConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) (*CacheStoreManager, error) {
	payload, history, err := openStores(cacheBackend, cacheConnStr, historyBackend, historyConnStr)
	if err != nil {
		return nil, err
	}
	return &CacheStoreManager{payload: payload, history: history}, nil
}

// openStores opens whichever stores have a backend configured.
func openStores(cacheBackend schema.DatabaseBackend, cacheConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) (contract.CacheStore, contract.HistoryStore, error) {
	var payload contract.CacheStore
	if cacheBackend != "" {
		store, err := NewCacheStore(payloadTable, cacheBackend, cacheConnStr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize payload caching: %w", err)
		}
		payload = store
	}

	var history contract.HistoryStore
	if historyBackend != "" {
		store, err := NewHistoryStore(historyBackend, historyConnStr)
		if err != nil {
			if payload != nil {
				_ = payload.Close()
			}
			return nil, nil, fmt.Errorf("failed to initialize history store: %w", err)
		}
		history = store
	}
	return payload, history, nil
}

// Close closes every store held by the manager.
func (mgr *CacheStoreManager) Close() {
	mgr.Lock()
	defer mgr.Unlock()
	if mgr.payload != nil {
		_ = mgr.payload.Close()
	}
	if mgr.history != nil {
		_ = mgr.history.Close()
	}
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(Manager.Close)
}

// ClearCache clears the payload cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearTables(backend, dbFilePath, connStr, payloadTable)
}

// ClearHistory clears the compliance history for the specified backend.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearTables(backend, dbFilePath, connStr, historyTables...)
}

// clearTables removes the SQLite file or drops the named tables.
func clearTables(backend schema.DatabaseBackend, dbFilePath, connStr string, tables ...string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		for _, table := range tables {
			if err := clearSQLTable(backend, connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	driverName, err := driverFor(backend)
	if err != nil {
		return err
	}
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
