package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bagrikeng/tanlovbot/internal/domain"
	"github.com/bagrikeng/tanlovbot/internal/regions"
	"github.com/bagrikeng/tanlovbot/internal/storage"
)

const regionsFixture = `{
  "1": {
    "name": "Toshkent shahri",
    "districts": {
      "1": {"name": "Chilonzor tumani"},
      "2": {"name": "Yunusobod tumani"}
    }
  },
  "2": {
    "name": "Samarqand viloyati",
    "districts": {
      "1": {"name": "Urgut tumani"}
    }
  }
}`

func fixtureLoader(t *testing.T) *regions.Loader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte(regionsFixture), 0o644))
	return regions.NewLoader(path)
}

func seed(t *testing.T, store *storage.Memory) {
	t.Helper()
	ctx := context.Background()

	addrID, err := store.CreateAddress(ctx, &domain.Address{RegionID: 1, DistrictID: 2, Neighborhood: "Bog'bon mahallasi"})
	require.NoError(t, err)
	pID, err := store.CreateParticipant(ctx, &domain.Participant{
		TelegramID:     100,
		FullName:       "Aliyev Vali Akramovich",
		AddressID:      addrID,
		Workplace:      "Toshkent davlat universiteti",
		BirthDate:      "01.01.2000",
		PassportSeries: "AA1234567",
		PhoneNumber:    "+998901234567",
	})
	require.NoError(t, err)

	addr2, err := store.CreateAddress(ctx, &domain.Address{RegionID: 2, DistrictID: 1, Neighborhood: "Yangi hayot"})
	require.NoError(t, err)
	p2, err := store.CreateParticipant(ctx, &domain.Participant{
		TelegramID:     200,
		FullName:       "Karimova Nilufar",
		AddressID:      addr2,
		Workplace:      "Maktab",
		BirthDate:      "05.05.1999",
		PassportSeries: "AB7654321",
		PhoneNumber:    "+998901112233",
	})
	require.NoError(t, err)

	_, err = store.CreateSubmission(ctx, &domain.Submission{ParticipantID: pID, Category: domain.CategoryEssay, URL: "https://t.me/c/1234/5"})
	require.NoError(t, err)
	_, err = store.CreateSubmission(ctx, &domain.Submission{ParticipantID: pID, Category: domain.CategoryArt, URL: "https://t.me/c/1234/6"})
	require.NoError(t, err)
	_, err = store.CreateSubmission(ctx, &domain.Submission{ParticipantID: p2, Category: domain.CategoryEssay, URL: "https://t.me/c/1234/7"})
	require.NoError(t, err)
}

func TestGenerateWorkbook(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store)

	g := NewGenerator(store, fixtureLoader(t))
	g.now = func() time.Time { return time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC) }

	exp, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, `^Tanlov_malumotlari_15_03_2025_[0-9a-f-]{8}\.xlsx$`, exp.Filename)
	assert.Contains(t, exp.Caption, "👥 Jami ishtirokchilar: 2")
	assert.Contains(t, exp.Caption, "📁 Jami loyihalar: 3")
	assert.Contains(t, exp.Caption, "15.03.2025 10:30")

	f, err := excelize.OpenReader(bytes.NewReader(exp.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{sheetParticipants, sheetSubmissions, sheetStats}, f.GetSheetList())

	rows, err := f.GetRows(sheetParticipants)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "To'liq ism", rows[0][2])
	assert.Equal(t, "Aliyev Vali Akramovich", rows[1][2])
	assert.Equal(t, "Toshkent shahri", rows[1][3])
	assert.Equal(t, "Yunusobod tumani", rows[1][4])
	assert.Equal(t, "2", rows[1][10], "submission count per participant")
	assert.Equal(t, "Samarqand viloyati", rows[2][3])
	assert.Equal(t, "1", rows[2][10])

	rows, err = f.GetRows(sheetSubmissions)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "✍️ Maqola yoki esse", rows[1][3])
	assert.Equal(t, "https://t.me/c/1234/5", rows[1][4])
	assert.Equal(t, "🎨 Rassomchilik ishi", rows[2][3])

	has, link, err := f.GetCellHyperLink(sheetSubmissions, "E2")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "https://t.me/c/1234/5", link)
}

func TestGenerateStatsSections(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store)

	g := NewGenerator(store, fixtureLoader(t))
	exp, err := g.Generate(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(exp.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetStats)
	require.NoError(t, err)

	flat := make(map[string]string)
	for _, row := range rows {
		if len(row) >= 2 {
			flat[row[0]] = row[1]
		}
	}
	assert.Equal(t, "2", flat["Jami ro'yxatdan o'tganlar:"])
	assert.Equal(t, "3", flat["Jami yuborilgan loyihalar:"])
	assert.Equal(t, "1", flat["Toshkent shahri"])
	assert.Equal(t, "1", flat["Samarqand viloyati"])
	assert.Equal(t, "2", flat["✍️ Maqola yoki esse"])
	assert.Equal(t, "1", flat["🎨 Rassomchilik ishi"])
}

func TestGenerateEmptyStore(t *testing.T) {
	g := NewGenerator(storage.NewMemory(), fixtureLoader(t))
	exp, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, exp.Caption, "👥 Jami ishtirokchilar: 0")

	f, err := excelize.OpenReader(bytes.NewReader(exp.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetParticipants)
	require.NoError(t, err)
	require.Len(t, rows, 1, "only the header row")
}
