package schema

// CoreWorkEpisodeTable represents the 'core.workepisode' table
type CoreWorkEpisodeTable struct {
	Table         string
	ID            string
	WorkID        string
	EpisodeNumber string
	Title         string
	ImageURLs     string
	CreatedAt     string
	UpdatedAt     string
}

// CoreWorkEpisode is the schema definition for core.workepisode
var CoreWorkEpisode = CoreWorkEpisodeTable{
	Table:         "core.workepisode",
	ID:            "id",
	WorkID:        "workid",
	EpisodeNumber: "episodenumber",
	Title:         "title",
	ImageURLs:     "imageurls",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CoreWorkEpisodeTable) Columns() []string {
	return []string{t.ID, t.WorkID, t.EpisodeNumber, t.Title, t.ImageURLs, t.CreatedAt, t.UpdatedAt}
}
