package schema

// CoreWorkTable represents the 'core.work' table
type CoreWorkTable struct {
	Table        string
	ID           string
	Title        string
	Slug         string
	Description  string
	WorkType     string
	Genre        string
	AgeRating    string
	Visibility   string
	Tags         string
	ThumbnailURL string
	AuthorID     string
	AuthorName   string
	ViewCount    string
	LikeCount    string
	CreatedAt    string
	UpdatedAt    string
}

// CoreWork is the schema definition for core.work
var CoreWork = CoreWorkTable{
	Table:        "core.work",
	ID:           "id",
	Title:        "title",
	Slug:         "slug",
	Description:  "description",
	WorkType:     "worktype",
	Genre:        "genre",
	AgeRating:    "agerating",
	Visibility:   "visibility",
	Tags:         "tags",
	ThumbnailURL: "thumbnailurl",
	AuthorID:     "authorid",
	AuthorName:   "authorname",
	ViewCount:    "viewcount",
	LikeCount:    "likecount",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CoreWorkTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.WorkType, t.Genre, t.AgeRating, t.Visibility,
		t.Tags, t.ThumbnailURL, t.AuthorID, t.AuthorName, t.ViewCount, t.LikeCount,
		t.CreatedAt, t.UpdatedAt,
	}
}
