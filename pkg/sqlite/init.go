package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver with pragmas and vector functions installed.
const DriverName = "sqlite3_sorcerer"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if _, err := conn.Exec("PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;", nil); err != nil {
				return err
			}
			return conn.RegisterFunc("vec_cosine", CosineBlob, true)
		},
	})
}
