package schema

// LibraryRecentViewTable represents the 'library.recentview' table
type LibraryRecentViewTable struct {
	Table          string
	UserID         string
	WorkID         string
	ViewedAt       string
	PositionMarker string
}

// LibraryRecentView is the schema definition for library.recentview
var LibraryRecentView = LibraryRecentViewTable{
	Table:          "library.recentview",
	UserID:         "userid",
	WorkID:         "workid",
	ViewedAt:       "viewedat",
	PositionMarker: "positionmarker",
}

func (t LibraryRecentViewTable) Columns() []string {
	return []string{t.UserID, t.WorkID, t.ViewedAt, t.PositionMarker}
}
