package domain

// Category is the internal key of a submission category.
type Category string

const (
	CategoryEssay Category = "essay"
	CategoryPoem  Category = "poem"
	CategorySong  Category = "song"
	CategoryArt   Category = "art"
	CategoryCraft Category = "craft"
	CategoryVideo Category = "video"
)

// CategoryInfo pairs a category key with its display label and the accepted
// file formats shown to the user.
type CategoryInfo struct {
	Key     Category
	Title   string
	Formats string
}

// Categories is the closed set of submission categories, in menu order.
var Categories = []CategoryInfo{
	{Key: CategoryEssay, Title: "✍️ Maqola yoki esse", Formats: "doc, docx, pdf"},
	{Key: CategoryPoem, Title: "🎤 She'r yoki monolog", Formats: "doc, docx, pdf"},
	{Key: CategorySong, Title: "🎶 Qo'shiq yoki musiqiy chiqish", Formats: "mp3, wav"},
	{Key: CategoryArt, Title: "🎨 Rassomchilik ishi", Formats: "jpg, png, gif"},
	{Key: CategoryCraft, Title: "🧵 Hunarmandchilik namunasi", Formats: "jpg, png, pdf"},
	{Key: CategoryVideo, Title: "🎥 Video-rolik yoki kontent", Formats: "mp4, avi"},
}

// CategoryByTitle resolves a display label to its category. Selection in the
// bot happens by label, so the match must be exact.
func CategoryByTitle(title string) (CategoryInfo, bool) {
	for _, info := range Categories {
		if info.Title == title {
			return info, true
		}
	}
	return CategoryInfo{}, false
}

// CategoryTitle returns the display label for a key, or the key itself when
// the key is not part of the closed set.
func CategoryTitle(key Category) string {
	for _, info := range Categories {
		if info.Key == key {
			return info.Title
		}
	}
	return string(key)
}
