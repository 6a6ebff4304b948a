package asset

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS links (
	host    TEXT    NOT NULL,
	hash    TEXT    NOT NULL,
	url     TEXT    NOT NULL,
	created INTEGER NOT NULL,
	PRIMARY KEY (host, hash)
);
CREATE INDEX IF NOT EXISTS links_created ON links (created);
`

// Cache remembers published links. Entries older than ttl are treated as
// absent, zero ttl keeps entries forever. Not safe for concurrent use.
type Cache struct {
	log  *zap.Logger
	conn *sqlite.Conn
	ttl  time.Duration
	now  func() time.Time
}

// OpenCache opens (creating when necessary) links cache at path. Empty path
// opens cache which lives only as long as the process.
func OpenCache(path string, ttl time.Duration, log *zap.Logger) (*Cache, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		conn *sqlite.Conn
		err  error
	)
	if path == "" {
		conn, err = sqlite.OpenConn(":memory:", sqlite.OpenReadWrite, sqlite.OpenMemory)
	} else {
		conn, err = sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open links cache (%s): %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, cacheSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare links cache (%s): %w", path, err)
	}

	c := &Cache{log: log.Named("cache"), conn: conn, ttl: ttl, now: time.Now}
	c.log.Debug("Links cache opened", zap.String("path", path), zap.Duration("ttl", ttl))
	return c, nil
}

// Get returns link previously published by host for content hash.
func (c *Cache) Get(host, hash string) (string, bool, error) {
	var (
		url     string
		created int64
		found   bool
	)
	err := sqlitex.Execute(c.conn, `SELECT url, created FROM links WHERE host = ? AND hash = ?`,
		&sqlitex.ExecOptions{
			Args: []any{host, hash},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				url = stmt.ColumnText(0)
				created = stmt.ColumnInt64(1)
				found = true
				return nil
			}})
	if err != nil {
		return "", false, fmt.Errorf("unable to query links cache: %w", err)
	}
	if !found {
		return "", false, nil
	}
	if c.expired(created) {
		c.log.Debug("Cached link expired", zap.String("host", host), zap.String("hash", hash), zap.Time("created", time.Unix(created, 0)))
		return "", false, nil
	}
	return url, true, nil
}

// Put stores (or refreshes) link published by host for content hash.
func (c *Cache) Put(host, hash, url string) error {
	err := sqlitex.Execute(c.conn,
		`INSERT INTO links (host, hash, url, created) VALUES (?, ?, ?, ?)
		ON CONFLICT (host, hash) DO UPDATE SET url = excluded.url, created = excluded.created`,
		&sqlitex.ExecOptions{Args: []any{host, hash, url, c.now().Unix()}})
	if err != nil {
		return fmt.Errorf("unable to update links cache: %w", err)
	}
	return nil
}

// Purge removes expired entries and returns their number.
func (c *Cache) Purge() (int, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	err := sqlitex.Execute(c.conn, `DELETE FROM links WHERE created <= ?`,
		&sqlitex.ExecOptions{Args: []any{c.now().Add(-c.ttl).Unix()}})
	if err != nil {
		return 0, fmt.Errorf("unable to purge links cache: %w", err)
	}
	n := c.conn.Changes()
	if n > 0 {
		c.log.Debug("Expired links removed", zap.Int("count", n))
	}
	return n, nil
}

// Close releases underlying database.
func (c *Cache) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Cache) expired(created int64) bool {
	if c.ttl <= 0 {
		return false
	}
	return !c.now().Before(time.Unix(created, 0).Add(c.ttl))
}
