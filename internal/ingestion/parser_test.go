package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// memRepo collects inserted points in memory for ingestion tests.
type memRepo struct {
	mu       sync.Mutex
	inserted []models.PricePoint
	batches  int
	ingested map[string]bool
	deleted  []string
	insErr   error
}

func newMemRepo() *memRepo {
	return &memRepo{ingested: map[string]bool{}}
}

func (m *memRepo) InsertPricesBatch(_ context.Context, points []models.PricePoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insErr != nil {
		return m.insErr
	}
	m.inserted = append(m.inserted, points...)
	m.batches++
	return nil
}

func (m *memRepo) AllSymbols(_ context.Context) ([]string, error) { return nil, nil }
func (m *memRepo) MinPrice(_ context.Context, _ string) (*decimal.Decimal, error) {
	return nil, nil
}
func (m *memRepo) MaxPrice(_ context.Context, _ string) (*decimal.Decimal, error) {
	return nil, nil
}
func (m *memRepo) MinPriceInRange(_ context.Context, _ string, _, _ int64) (*decimal.Decimal, error) {
	return nil, nil
}
func (m *memRepo) MaxPriceInRange(_ context.Context, _ string, _, _ int64) (*decimal.Decimal, error) {
	return nil, nil
}
func (m *memRepo) OldestPoint(_ context.Context, _ string) (*models.PricePoint, error) {
	return nil, nil
}
func (m *memRepo) NewestPoint(_ context.Context, _ string) (*models.PricePoint, error) {
	return nil, nil
}
func (m *memRepo) MinPoint(_ context.Context, _ string) (*models.PricePoint, error) {
	return nil, nil
}
func (m *memRepo) MaxPoint(_ context.Context, _ string) (*models.PricePoint, error) {
	return nil, nil
}

func (m *memRepo) HasIngestionForFile(_ context.Context, filename string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ingested[filename], nil
}

func (m *memRepo) UpsertIngestionLog(_ context.Context, filename, _ string, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingested[filename] = true
	return nil
}

func (m *memRepo) DeletePricesBySymbol(_ context.Context, symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, symbol)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const btcCSV = "timestamp,symbol,price\n" +
	"1641009600000,BTC,46813.21\n" +
	"1641013200000,btc,46979.61\n" +
	"1641016800000,BTC,47143.98\n"

func TestParseAndPersistFile_OK(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "BTC_values.csv", btcCSV)
	repo := newMemRepo()

	total, err := parseAndPersistFile(context.Background(), path, repo, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(repo.inserted) != 3 {
		t.Fatalf("total=%d inserted=%d, want 3", total, len(repo.inserted))
	}
	// Symbols are canonicalized to uppercase at the boundary.
	for _, p := range repo.inserted {
		if p.Symbol != "BTC" {
			t.Fatalf("symbol not canonicalized: %+v", p)
		}
	}
	if repo.inserted[0].Timestamp != 1641009600000 || repo.inserted[0].Price.String() != "46813.21" {
		t.Fatalf("unexpected first point: %+v", repo.inserted[0])
	}
}

func TestParseAndPersistFile_Batching(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	sb.WriteString("timestamp,symbol,price\n")
	for i := 0; i < 5; i++ {
		sb.WriteString("164100960000")
		sb.WriteString(string(rune('0' + i)))
		sb.WriteString(",BTC,100\n")
	}
	path := writeFile(t, dir, "BTC_values.csv", sb.String())
	repo := newMemRepo()

	total, err := parseAndPersistFile(context.Background(), path, repo, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 {
		t.Fatalf("total=%d, want 5", total)
	}
	// 2 + 2 + 1 (final flush)
	if repo.batches != 3 {
		t.Fatalf("batches=%d, want 3", repo.batches)
	}
}

func TestParseAndPersistFile_Failures(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "wrong header order",
			content: "symbol,timestamp,price\n1,BTC,2\n",
			wantErr: "invalid header",
		},
		{
			name:    "wrong header length",
			content: "timestamp,symbol\n1,BTC\n",
			wantErr: "invalid header length",
		},
		{
			name:    "bad timestamp",
			content: "timestamp,symbol,price\nnope,BTC,2\n",
			wantErr: "parse timestamp",
		},
		{
			name:    "bad price",
			content: "timestamp,symbol,price\n1,BTC,abc\n",
			wantErr: "parse price",
		},
		{
			name:    "empty symbol",
			content: "timestamp,symbol,price\n1,,2\n",
			wantErr: "empty symbol",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "X_values.csv", tc.content)
			_, err := parseAndPersistFile(context.Background(), path, newMemRepo(), 100)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("want error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParseAndPersistFile_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "BTC_values.csv", btcCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parseAndPersistFile(ctx, path, newMemRepo(), 100)
	if err == nil {
		t.Fatalf("expected context error")
	}
}
