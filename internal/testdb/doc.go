//go:build integration

// Package testdb provides helpers for database integration tests.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can run in parallel against one database:
//
//	func TestMyStore(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, logger)
//	        // ...
//	    })
//	}
//
// Tests are skipped when VSCONNECT_TEST_DATABASE_URL is not set.
package testdb
