package flow

import (
	"github.com/bagrikeng/tanlovbot/internal/domain"
	"github.com/bagrikeng/tanlovbot/internal/regions"
)

// pairRows lays labels out two per row, the shape the original
// keyboards use throughout.
func pairRows(labels []string) [][]string {
	rows := make([][]string, 0, (len(labels)+1)/2)
	for i := 0; i < len(labels); i += 2 {
		end := i + 2
		if end > len(labels) {
			end = len(labels)
		}
		rows = append(rows, labels[i:end])
	}
	return rows
}

func welcomeKeyboard(admin bool) [][]string {
	rows := [][]string{{btnRegister}}
	if admin {
		rows = append(rows, []string{btnExport})
	}
	return rows
}

func registeredKeyboard() [][]string {
	return [][]string{{btnSubmit, btnEditProfile}, {btnHome}}
}

func afterSaveKeyboard() [][]string {
	return [][]string{{btnSubmitAnother, btnHome}}
}

func confirmKeyboard() [][]string {
	return [][]string{{btnConfirmYes, btnConfirmEdit}}
}

func editMenuKeyboard() [][]string {
	return [][]string{
		{btnFieldName, btnFieldAddress},
		{btnFieldWorkplace, btnFieldBirthDate},
		{btnFieldPassport, btnFieldPhone},
		{btnBack},
	}
}

func regionKeyboard(h regions.Hierarchy) [][]string {
	return pairRows(h.RegionNames())
}

func districtKeyboard(h regions.Hierarchy, regionID string) [][]string {
	return pairRows(h.DistrictNames(regionID))
}

func categoryKeyboard() [][]string {
	titles := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		titles = append(titles, c.Title)
	}
	return pairRows(titles)
}
