package storage

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

func newMockRepo(t *testing.T) (*pricesRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &pricesRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func TestAllSymbols_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT symbol FROM prices ORDER BY symbol`)).
		WillReturnRows(sqlmock.NewRows([]string{"symbol"}).AddRow("BTC").AddRow("DOGE").AddRow("ETH"))

	symbols, err := repo.AllSymbols(context.Background())
	if err != nil {
		t.Fatalf("AllSymbols: %v", err)
	}
	if len(symbols) != 3 || symbols[0] != "BTC" || symbols[2] != "ETH" {
		t.Fatalf("unexpected symbols: %v", symbols)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMinMaxPrice_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	cases := []struct {
		name  string
		value interface{} // nil means SQL NULL (unknown symbol)
		want  string
	}{
		{name: "known symbol", value: "33276.59", want: "33276.59"},
		{name: "unknown symbol returns nil", value: nil, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT MIN(price) FROM prices WHERE symbol = $1`)).
				WithArgs("BTC").
				WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(tc.value))

			out, err := repo.MinPrice(context.Background(), "BTC")
			if err != nil {
				t.Fatalf("MinPrice: %v", err)
			}
			if tc.want == "" {
				if out != nil {
					t.Fatalf("want nil, got %v", out)
				}
			} else if out == nil || out.String() != tc.want {
				t.Fatalf("want %s, got %v", tc.want, out)
			}
		})
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPriceInRange_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MAX(price) FROM prices WHERE symbol = $1 AND price_timestamp >= $2 AND price_timestamp < $3`)).
		WithArgs("ETH", int64(1640995200000), int64(1641081600000)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("3828.11"))

	out, err := repo.MaxPriceInRange(context.Background(), "ETH", 1640995200000, 1641081600000)
	if err != nil {
		t.Fatalf("MaxPriceInRange: %v", err)
	}
	if out == nil || out.String() != "3828.11" {
		t.Fatalf("unexpected price: %v", out)
	}

	// Empty window yields NULL, not an error.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MIN(price) FROM prices WHERE symbol = $1 AND price_timestamp >= $2 AND price_timestamp < $3`)).
		WithArgs("ETH", int64(0), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(nil))

	out, err = repo.MinPriceInRange(context.Background(), "ETH", 0, 1)
	if err != nil || out != nil {
		t.Fatalf("want nil,nil for empty window, got %v, %v", out, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPointQueries_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	pointQuery := `SELECT price_timestamp, symbol, price FROM prices\s+WHERE symbol = \$1 ORDER BY price_timestamp ASC, price ASC LIMIT 1`
	mock.ExpectQuery(pointQuery).
		WithArgs("BTC").
		WillReturnRows(sqlmock.NewRows([]string{"price_timestamp", "symbol", "price"}).
			AddRow(int64(1641009600000), "BTC", "46813.21"))

	out, err := repo.OldestPoint(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("OldestPoint: %v", err)
	}
	if out == nil || out.Timestamp != 1641009600000 || out.Symbol != "BTC" || out.Price.String() != "46813.21" {
		t.Fatalf("unexpected point: %+v", out)
	}

	// No rows means "no data", not an error.
	minQuery := `SELECT price_timestamp, symbol, price FROM prices\s+WHERE symbol = \$1 ORDER BY price ASC, price_timestamp ASC LIMIT 1`
	mock.ExpectQuery(minQuery).
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"price_timestamp", "symbol", "price"}))

	out, err = repo.MinPoint(context.Background(), "NOPE")
	if err != nil || out != nil {
		t.Fatalf("want nil,nil for unknown symbol, got %+v, %v", out, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIngestionLog_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	// HasIngestionForFile
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE filename = $1)`)).
		WithArgs("BTC_values.csv").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasIngestionForFile(context.Background(), "BTC_values.csv")
	if err != nil || !ok {
		t.Fatalf("HasIngestionForFile: ok=%v err=%v", ok, err)
	}

	// UpsertIngestionLog
	mock.ExpectExec(`INSERT INTO ingestion_log \(filename, symbol, row_count\)`).
		WithArgs("BTC_values.csv", "BTC", 100).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.UpsertIngestionLog(context.Background(), "BTC_values.csv", "BTC", 100); err != nil {
		t.Fatalf("UpsertIngestionLog: %v", err)
	}

	// DeletePricesBySymbol
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM prices WHERE symbol = $1`)).
		WithArgs("BTC").
		WillReturnResult(sqlmock.NewResult(0, 3))
	if err := repo.DeletePricesBySymbol(context.Background(), "BTC"); err != nil {
		t.Fatalf("DeletePricesBySymbol: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertPricesBatch_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	points := []models.PricePoint{
		{Timestamp: 1641009600000, Symbol: "BTC", Price: decimal.RequireFromString("46813.21")},
		{Timestamp: 1641013200000, Symbol: "BTC", Price: decimal.RequireFromString("46979.61")},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL synchronous_commit = OFF`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	stmt := mock.ExpectPrepare(`COPY "prices"`)
	stmt.ExpectExec().WithArgs("BTC", int64(1641009600000), "46813.21").WillReturnResult(sqlmock.NewResult(0, 1))
	stmt.ExpectExec().WithArgs("BTC", int64(1641013200000), "46979.61").WillReturnResult(sqlmock.NewResult(0, 1))
	stmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.InsertPricesBatch(context.Background(), points); err != nil {
		t.Fatalf("InsertPricesBatch: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
