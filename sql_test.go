package bigdecimal

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openLedger(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// A single connection keeps the in-memory database alive between statements.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE ledger (id INTEGER PRIMARY KEY, amount TEXT NOT NULL, fee TEXT)`)
	require.NoError(t, err)
	return db
}

func TestDecimal_SQLRoundTrip(t *testing.T) {
	db := openLedger(t)

	amounts := []Decimal{
		MustParse("0"),
		MustParse("-24872344603.881461"),
		MustParse("99999999999999999999999999999999999999.99"),
		MustParse("0.00000000000000000000000000000000000000000000000001"),
	}
	for i, d := range amounts {
		_, err := db.Exec(`INSERT INTO ledger (id, amount, fee) VALUES (?, ?, ?)`, i, d, NullDecimal{})
		require.NoError(t, err)
	}

	rows, err := db.Query(`SELECT amount, fee FROM ledger ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var got []Decimal
	for rows.Next() {
		var (
			amount Decimal
			fee    NullDecimal
		)
		require.NoError(t, rows.Scan(&amount, &fee))
		assert.False(t, fee.Valid)
		got = append(got, amount)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, amounts, got)
}

func TestNullDecimal_SQLRoundTrip(t *testing.T) {
	db := openLedger(t)

	fee := NullDecimal{Decimal: MustParse("1.25"), Valid: true}
	_, err := db.Exec(`INSERT INTO ledger (id, amount, fee) VALUES (1, ?, ?)`, One, fee)
	require.NoError(t, err)

	var got NullDecimal
	err = db.QueryRow(`SELECT fee FROM ledger WHERE id = 1`).Scan(&got)
	require.NoError(t, err)
	assert.Equal(t, fee, got)

	var bad Decimal
	err = db.QueryRow(`SELECT 'abc'`).Scan(&bad)
	require.ErrorIs(t, err, ErrInvalidDecimal)
}
