// Package report builds the admin xlsx export: one sheet of participants,
// one of submissions and one of aggregate statistics.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/bagrikeng/tanlovbot/core/logger"
	"github.com/bagrikeng/tanlovbot/internal/domain"
	"github.com/bagrikeng/tanlovbot/internal/regions"
	"github.com/bagrikeng/tanlovbot/internal/storage"
)

const (
	sheetParticipants = "Foydalanuvchilar"
	sheetSubmissions  = "Loyihalar"
	sheetStats        = "Statistika"
)

// Export is a finished workbook ready to be sent as a document.
type Export struct {
	Filename string
	Caption  string
	Data     []byte
}

type Generator struct {
	store   storage.Store
	regions *regions.Loader
	now     func() time.Time
}

func NewGenerator(store storage.Store, loader *regions.Loader) *Generator {
	return &Generator{store: store, regions: loader, now: time.Now}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Generate reads all participants and submissions and renders the
// three-sheet workbook in memory.
func (g *Generator) Generate(ctx context.Context) (Export, error) {
	start := time.Now()

	participants, err := g.store.ListParticipants(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("list participants: %w", err)
	}
	submissions, err := g.store.ListSubmissions(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("list submissions: %w", err)
	}
	h := g.regions.Load()

	addresses := make(map[int64]*domain.Address)
	for _, p := range participants {
		if p.AddressID == 0 {
			continue
		}
		addr, err := g.store.GetAddress(ctx, p.AddressID)
		if err != nil {
			return Export{}, fmt.Errorf("address %d: %w", p.AddressID, err)
		}
		if addr != nil {
			addresses[p.ID] = addr
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := g.writeParticipants(f, participants, submissions, addresses, h); err != nil {
		return Export{}, err
	}
	if err := g.writeSubmissions(f, participants, submissions, addresses, h); err != nil {
		return Export{}, err
	}
	if err := g.writeStats(f, participants, submissions, addresses, h); err != nil {
		return Export{}, err
	}
	if idx, err := f.GetSheetIndex(sheetParticipants); err == nil {
		f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return Export{}, fmt.Errorf("write workbook: %w", err)
	}

	now := g.now()
	exp := Export{
		Filename: fmt.Sprintf("Tanlov_malumotlari_%s_%s.xlsx",
			now.Format("02_01_2006"), uuid.NewString()[:8]),
		Caption: fmt.Sprintf("📊 <b>Tanlov ma'lumotlari</b>\n\n"+
			"👥 Jami ishtirokchilar: %d\n"+
			"📁 Jami loyihalar: %d\n"+
			"📅 Sana: %s",
			len(participants), len(submissions), now.Format("02.01.2006 15:04")),
		Data: buf.Bytes(),
	}
	logger.Info(ctx, "report", "export.generated",
		slog.Int("participants", len(participants)),
		slog.Int("submissions", len(submissions)),
		slog.Int("bytes", len(exp.Data)),
		slog.Duration("duration", logger.Took(start)),
	)
	return exp, nil
}

func (g *Generator) writeParticipants(f *excelize.File, participants []domain.Participant, submissions []domain.Submission, addresses map[int64]*domain.Address, h regions.Hierarchy) error {
	f.SetSheetName("Sheet1", sheetParticipants)

	counts := make(map[int64]int)
	for _, s := range submissions {
		counts[s.ParticipantID]++
	}

	headers := []interface{}{
		"№", "Telegram ID", "To'liq ism", "Viloyat", "Tuman", "Mahalla",
		"Ish joyi", "Tug'ilgan sana", "Pasport", "Telefon", "Loyihalar soni",
	}
	if err := g.writeHeader(f, sheetParticipants, headers); err != nil {
		return err
	}

	for i, p := range participants {
		regionName, districtName, neighborhood := "N/A", "N/A", "N/A"
		if addr := addresses[p.ID]; addr != nil {
			regionName = h.RegionName(fmt.Sprint(addr.RegionID))
			districtName = h.DistrictName(fmt.Sprint(addr.RegionID), fmt.Sprint(addr.DistrictID))
			neighborhood = orNA(addr.Neighborhood)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			i + 1, p.TelegramID, orNA(p.FullName), regionName, districtName,
			neighborhood, orNA(p.Workplace), orNA(p.BirthDate),
			orNA(p.PassportSeries), orNA(p.PhoneNumber), counts[p.ID],
		}
		if err := f.SetSheetRow(sheetParticipants, cell, &row); err != nil {
			return fmt.Errorf("participants row %d: %w", i+1, err)
		}
	}

	widths := []float64{6, 14, 30, 20, 20, 25, 30, 15, 15, 16, 12}
	return g.finishSheet(f, sheetParticipants, widths)
}

func (g *Generator) writeSubmissions(f *excelize.File, participants []domain.Participant, submissions []domain.Submission, addresses map[int64]*domain.Address, h regions.Hierarchy) error {
	if _, err := f.NewSheet(sheetSubmissions); err != nil {
		return err
	}

	byID := make(map[int64]domain.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	headers := []interface{}{
		"№", "Ishtirokchi", "Telegram ID", "Loyiha turi", "Loyiha URL",
		"Viloyat", "Tuman", "Telefon",
	}
	if err := g.writeHeader(f, sheetSubmissions, headers); err != nil {
		return err
	}

	linkStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0563C1", Underline: "single", Size: 11},
	})
	if err != nil {
		return err
	}

	for i, s := range submissions {
		name, telegramID, phone := "N/A", "", "N/A"
		regionName, districtName := "N/A", "N/A"
		if p, ok := byID[s.ParticipantID]; ok {
			name = orNA(p.FullName)
			telegramID = fmt.Sprint(p.TelegramID)
			phone = orNA(p.PhoneNumber)
			if addr := addresses[p.ID]; addr != nil {
				regionName = h.RegionName(fmt.Sprint(addr.RegionID))
				districtName = h.DistrictName(fmt.Sprint(addr.RegionID), fmt.Sprint(addr.DistrictID))
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			i + 1, name, telegramID, domain.CategoryTitle(s.Category),
			orNA(s.URL), regionName, districtName, phone,
		}
		if err := f.SetSheetRow(sheetSubmissions, cell, &row); err != nil {
			return fmt.Errorf("submissions row %d: %w", i+1, err)
		}
		if s.URL != "" {
			urlCell, _ := excelize.CoordinatesToCellName(5, i+2)
			if err := f.SetCellHyperLink(sheetSubmissions, urlCell, s.URL, "External"); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheetSubmissions, urlCell, urlCell, linkStyle); err != nil {
				return err
			}
		}
	}

	widths := []float64{6, 30, 14, 25, 45, 20, 20, 16}
	return g.finishSheet(f, sheetSubmissions, widths)
}

func (g *Generator) writeStats(f *excelize.File, participants []domain.Participant, submissions []domain.Submission, addresses map[int64]*domain.Address, h regions.Hierarchy) error {
	if _, err := f.NewSheet(sheetStats); err != nil {
		return err
	}

	byRegion := make(map[string]int)
	for _, p := range participants {
		if addr := addresses[p.ID]; addr != nil {
			byRegion[h.RegionName(fmt.Sprint(addr.RegionID))]++
		}
	}
	byCategory := make(map[string]int)
	for _, s := range submissions {
		byCategory[domain.CategoryTitle(s.Category)]++
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "1F4E78"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E7E6E6"}},
	})
	if err != nil {
		return err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
	})
	if err != nil {
		return err
	}

	row := 1
	setCell := func(col, r int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col, r)
		f.SetCellValue(sheetStats, cell, v)
	}
	merged := func(r, style int, text string) {
		setCell(1, r, text)
		left, _ := excelize.CoordinatesToCellName(1, r)
		right, _ := excelize.CoordinatesToCellName(2, r)
		f.MergeCell(sheetStats, left, right)
		f.SetCellStyle(sheetStats, left, right, style)
	}

	merged(row, titleStyle, "UMUMIY STATISTIKA")
	row += 2
	setCell(1, row, "Jami ro'yxatdan o'tganlar:")
	setCell(2, row, len(participants))
	row++
	setCell(1, row, "Jami yuborilgan loyihalar:")
	setCell(2, row, len(submissions))
	row += 3

	merged(row, sectionStyle, "VILOYATLAR BO'YICHA")
	row++
	for _, kv := range sortedByCount(byRegion) {
		setCell(1, row, kv.name)
		setCell(2, row, kv.count)
		row++
	}
	row += 2

	merged(row, sectionStyle, "LOYIHA TURLARI BO'YICHA")
	row++
	for _, kv := range sortedByCount(byCategory) {
		setCell(1, row, kv.name)
		setCell(2, row, kv.count)
		row++
	}

	f.SetColWidth(sheetStats, "A", "A", 45)
	f.SetColWidth(sheetStats, "B", "B", 18)
	return nil
}

func (g *Generator) writeHeader(f *excelize.File, sheet string, headers []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}

func (g *Generator) finishSheet(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

type nameCount struct {
	name  string
	count int
}

// sortedByCount orders descending by count, then by name for a stable
// layout.
func sortedByCount(m map[string]int) []nameCount {
	out := make([]nameCount, 0, len(m))
	for name, count := range m {
		out = append(out, nameCount{name, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
